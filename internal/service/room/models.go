package room

type Video struct {
	VideoId string `json:"video_id"`
	Title   string `json:"title"`
	AddedBy string `json:"added_by"`
}

type Player struct {
	VideoId     string  `json:"video_id"`
	CurrentTime float64 `json:"current_time"`
	IsPaused    bool    `json:"is_paused"`
}

type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	Id       string       `json:"id"`
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
}

// RoomState is the full snapshot sent to a joining or resyncing client.
type RoomState struct {
	Playlist []Video  `json:"playlist"`
	Player   *Player  `json:"player"`
	Members  []string `json:"members"`
	Polls    []Poll   `json:"polls"`
}

type ActionKind string

const (
	ActionPlay  ActionKind = "play"
	ActionPause ActionKind = "pause"
	ActionSeek  ActionKind = "seek"
	ActionLoad  ActionKind = "load"
)

type VideoAction struct {
	Kind    ActionKind `json:"kind"`
	VideoId string     `json:"video_id,omitempty"`
	Time    float64    `json:"time"`
}
