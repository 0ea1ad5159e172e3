package inmemory

import (
	"context"
	"slices"

	"github.com/watchroom/server/internal/repository/room"
)

func (r *repo) AddVideo(_ context.Context, params *room.AddVideoParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	state.queue = append(state.queue, room.Video{
		EntryId: params.EntryId,
		VideoId: params.VideoId,
		Title:   params.Title,
		AddedBy: params.AddedBy,
	})

	return nil
}

func (r *repo) RemoveVideoAt(_ context.Context, params *room.RemoveVideoParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)
	if params.Index < 0 || params.Index >= len(state.queue) {
		return room.ErrVideoNotFound
	}

	state.queue = slices.Delete(state.queue, params.Index, params.Index+1)

	return nil
}

// PopFirstVideo removes and returns the front of the queue.
func (r *repo) PopFirstVideo(_ context.Context, roomId string) (room.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(roomId)
	if len(state.queue) == 0 {
		return room.Video{}, room.ErrQueueEmpty
	}

	video := state.queue[0]
	state.queue = slices.Delete(state.queue, 0, 1)

	return video, nil
}

func (r *repo) GetVideos(_ context.Context, roomId string) ([]room.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return []room.Video{}, nil
	}

	return slices.Clone(state.queue), nil
}

func (r *repo) GetVideosLength(_ context.Context, roomId string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return 0, nil
	}

	return len(state.queue), nil
}
