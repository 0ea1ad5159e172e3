package inmemory

import (
	"context"

	"github.com/watchroom/server/internal/repository/room"
)

// AddSkipVote is idempotent: re-voting from the same connection does not
// grow the set.
func (r *repo) AddSkipVote(_ context.Context, params *room.AddSkipVoteParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	state.skipVotes[params.ConnId] = struct{}{}

	return nil
}

func (r *repo) RemoveSkipVote(_ context.Context, params *room.RemoveSkipVoteParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	delete(state.skipVotes, params.ConnId)

	return nil
}

func (r *repo) GetSkipVotesCount(_ context.Context, roomId string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return 0, nil
	}

	return len(state.skipVotes), nil
}

func (r *repo) ClearSkipVotes(_ context.Context, roomId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(roomId)
	state.skipVotes = make(map[string]struct{})

	return nil
}
