package room

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

type CreatePollParams struct {
	Question string
	Options  []string
	SenderId string
	RoomId   string
}

type CreatePollResponse struct {
	Poll  Poll
	Conns []*wsconn.Conn
}

func (s *service) CreatePoll(ctx context.Context, params *CreatePollParams) (CreatePollResponse, error) {
	if len(params.Options) < 2 {
		return CreatePollResponse{}, ErrNotEnoughOptions
	}

	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	// time-derived, uuid suffix to stay unique within the same millisecond
	pollId := "poll_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + uuid.NewString()[:8]

	if err := s.roomRepo.SetPoll(ctx, &room.SetPollParams{
		PollId:   pollId,
		Question: params.Question,
		Options:  params.Options,
		RoomId:   params.RoomId,
	}); err != nil {
		return CreatePollResponse{}, fmt.Errorf("failed to set poll: %w", err)
	}

	poll, err := s.roomRepo.GetPoll(ctx, &room.GetPollParams{
		PollId: pollId,
		RoomId: params.RoomId,
	})
	if err != nil {
		return CreatePollResponse{}, fmt.Errorf("failed to get poll: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return CreatePollResponse{}, err
	}

	return CreatePollResponse{
		Poll:  s.toPoll(pollId, poll),
		Conns: conns,
	}, nil
}

type VotePollParams struct {
	PollId      string
	OptionIndex int
	ConnId      string
	RoomId      string
}

type VotePollResponse struct {
	Poll  Poll
	Conns []*wsconn.Conn
}

// VotePoll counts one vote per member per poll. A duplicate vote returns
// ErrAlreadyVoted and leaves the tally untouched.
func (s *service) VotePoll(ctx context.Context, params *VotePollParams) (VotePollResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	poll, err := s.roomRepo.GetPoll(ctx, &room.GetPollParams{
		PollId: params.PollId,
		RoomId: params.RoomId,
	})
	if err != nil {
		if errors.Is(err, room.ErrPollNotFound) {
			return VotePollResponse{}, ErrPollNotFound
		}

		return VotePollResponse{}, fmt.Errorf("failed to get poll: %w", err)
	}

	if params.OptionIndex < 0 || params.OptionIndex >= len(poll.Options) {
		return VotePollResponse{}, ErrOptionOutOfRange
	}

	if err := s.roomRepo.AddPollVote(ctx, &room.AddPollVoteParams{
		PollId:      params.PollId,
		ConnId:      params.ConnId,
		OptionIndex: params.OptionIndex,
		RoomId:      params.RoomId,
	}); err != nil {
		if errors.Is(err, room.ErrAlreadyVoted) {
			return VotePollResponse{}, ErrAlreadyVoted
		}

		return VotePollResponse{}, fmt.Errorf("failed to add poll vote: %w", err)
	}

	updated, err := s.roomRepo.GetPoll(ctx, &room.GetPollParams{
		PollId: params.PollId,
		RoomId: params.RoomId,
	})
	if err != nil {
		return VotePollResponse{}, fmt.Errorf("failed to get poll: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return VotePollResponse{}, err
	}

	return VotePollResponse{
		Poll:  s.toPoll(params.PollId, updated),
		Conns: conns,
	}, nil
}
