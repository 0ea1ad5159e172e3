package room

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrVideoNotFound  = errors.New("video not found")
	ErrQueueEmpty     = errors.New("queue is empty")
	ErrPollNotFound   = errors.New("poll not found")
	ErrAlreadyVoted   = errors.New("already voted")
)
