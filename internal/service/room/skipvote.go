package room

import (
	"context"
	"fmt"

	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

type VoteSkipParams struct {
	ConnId string
	RoomId string
}

type VoteSkipResponse struct {
	Votes            int
	Needed           int
	ThresholdReached bool
	Advanced         bool
	Playlist         []Video
	Action           *VideoAction
	Conns            []*wsconn.Conn
}

// VoteSkip tallies a skip vote. Votes are keyed by connection id, so
// re-voting never double counts. Reaching a majority of the current
// members clears the tally and advances the queue.
func (s *service) VoteSkip(ctx context.Context, params *VoteSkipParams) (VoteSkipResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	if err := s.roomRepo.AddSkipVote(ctx, &room.AddSkipVoteParams{
		ConnId: params.ConnId,
		RoomId: params.RoomId,
	}); err != nil {
		return VoteSkipResponse{}, fmt.Errorf("failed to add skip vote: %w", err)
	}

	votes, err := s.roomRepo.GetSkipVotesCount(ctx, params.RoomId)
	if err != nil {
		return VoteSkipResponse{}, fmt.Errorf("failed to get skip votes count: %w", err)
	}

	members, err := s.roomRepo.GetMembersCount(ctx, params.RoomId)
	if err != nil {
		return VoteSkipResponse{}, fmt.Errorf("failed to get members count: %w", err)
	}

	// ceil(members / 2)
	needed := (members + 1) / 2

	resp := VoteSkipResponse{
		Votes:  votes,
		Needed: needed,
	}

	if votes >= needed {
		resp.ThresholdReached = true

		if err := s.roomRepo.ClearSkipVotes(ctx, params.RoomId); err != nil {
			return VoteSkipResponse{}, fmt.Errorf("failed to clear skip votes: %w", err)
		}

		advanced, playlist, action, err := s.playNext(ctx, params.RoomId)
		if err != nil {
			return VoteSkipResponse{}, err
		}

		resp.Advanced = advanced
		resp.Playlist = playlist
		resp.Action = action
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return VoteSkipResponse{}, err
	}
	resp.Conns = conns

	return resp, nil
}
