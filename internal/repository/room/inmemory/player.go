package inmemory

import (
	"context"

	"github.com/watchroom/server/internal/repository/room"
)

func (r *repo) SetPlayer(_ context.Context, params *room.SetPlayerParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	state.player = &room.Player{
		VideoId:     params.VideoId,
		CurrentTime: params.CurrentTime,
		IsPaused:    params.IsPaused,
	}

	return nil
}

func (r *repo) GetPlayer(_ context.Context, roomId string) (room.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok || state.player == nil {
		return room.Player{}, room.ErrPlayerNotFound
	}

	return *state.player, nil
}
