package room

type SetMemberParams struct {
	ConnId   string
	Username string
	RoomId   string
}

type RemoveMemberParams struct {
	ConnId string
	RoomId string
}

type AddVideoParams struct {
	EntryId string
	VideoId string
	Title   string
	AddedBy string
	RoomId  string
}

type RemoveVideoParams struct {
	Index  int
	RoomId string
}

type SetPlayerParams struct {
	VideoId     string
	CurrentTime float64
	IsPaused    bool
	RoomId      string
}

type AddSkipVoteParams struct {
	ConnId string
	RoomId string
}

type RemoveSkipVoteParams struct {
	ConnId string
	RoomId string
}

type SetPollParams struct {
	PollId   string
	Question string
	Options  []string
	RoomId   string
}

type GetPollParams struct {
	PollId string
	RoomId string
}

type AddPollVoteParams struct {
	PollId      string
	ConnId      string
	OptionIndex int
	RoomId      string
}

type RemovePollVoterParams struct {
	ConnId string
	RoomId string
}
