package room

type Member struct {
	Username string `redis:"username"`
}

type Video struct {
	EntryId string `redis:"entry_id"`
	VideoId string `redis:"video_id"`
	Title   string `redis:"title"`
	AddedBy string `redis:"added_by"`
}

type Player struct {
	VideoId     string  `redis:"video_id"`
	CurrentTime float64 `redis:"current_time"`
	IsPaused    bool    `redis:"is_paused"`
}

type PollOption struct {
	Text  string
	Votes int
}

// Poll voters map connection id to the option index the member voted for, so
// pruning a departed voter can decrement the matching count.
type Poll struct {
	Question string
	Options  []PollOption
	Voters   map[string]int
}
