package inmemory

import (
	"context"
	"slices"

	"github.com/watchroom/server/internal/repository/room"
)

func (r *repo) SetMember(_ context.Context, params *room.SetMemberParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	if _, ok := state.members[params.ConnId]; !ok {
		state.memberIds = append(state.memberIds, params.ConnId)
	}
	state.members[params.ConnId] = room.Member{Username: params.Username}

	return nil
}

func (r *repo) RemoveMember(_ context.Context, params *room.RemoveMemberParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	if _, ok := state.members[params.ConnId]; !ok {
		return room.ErrMemberNotFound
	}

	delete(state.members, params.ConnId)
	state.memberIds = slices.DeleteFunc(state.memberIds, func(id string) bool {
		return id == params.ConnId
	})

	return nil
}

func (r *repo) GetMemberUsername(_ context.Context, roomId, connId string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return "", room.ErrMemberNotFound
	}

	member, ok := state.members[connId]
	if !ok {
		return "", room.ErrMemberNotFound
	}

	return member.Username, nil
}

// GetMemberNames returns display names in join order.
func (r *repo) GetMemberNames(_ context.Context, roomId string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return []string{}, nil
	}

	names := make([]string, 0, len(state.memberIds))
	for _, connId := range state.memberIds {
		names = append(names, state.members[connId].Username)
	}

	return names, nil
}

func (r *repo) GetMembersCount(_ context.Context, roomId string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return 0, nil
	}

	return len(state.members), nil
}

func (r *repo) GetMemberIds(_ context.Context, roomId string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return []string{}, nil
	}

	return slices.Clone(state.memberIds), nil
}
