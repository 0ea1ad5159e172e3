package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

type AddVideoParams struct {
	VideoId  string
	Title    string
	SenderId string
	RoomId   string
}

type AddVideoResponse struct {
	AddedVideo Video
	Playlist   []Video
	Conns      []*wsconn.Conn
}

func (s *service) AddVideo(ctx context.Context, params *AddVideoParams) (AddVideoResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	length, err := s.roomRepo.GetVideosLength(ctx, params.RoomId)
	if err != nil {
		return AddVideoResponse{}, fmt.Errorf("failed to get queue length: %w", err)
	}

	if length >= s.queueLimit {
		return AddVideoResponse{}, ErrQueueLimitReached
	}

	addedBy, err := s.roomRepo.GetMemberUsername(ctx, params.RoomId, params.SenderId)
	if err != nil {
		return AddVideoResponse{}, fmt.Errorf("failed to get member username: %w", err)
	}

	title := params.Title
	if title == "" {
		title = params.VideoId
	}

	if err := s.roomRepo.AddVideo(ctx, &room.AddVideoParams{
		EntryId: uuid.NewString(),
		VideoId: params.VideoId,
		Title:   title,
		AddedBy: addedBy,
		RoomId:  params.RoomId,
	}); err != nil {
		return AddVideoResponse{}, fmt.Errorf("failed to add video: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, params.RoomId)
	if err != nil {
		return AddVideoResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return AddVideoResponse{}, err
	}

	return AddVideoResponse{
		AddedVideo: Video{VideoId: params.VideoId, Title: title, AddedBy: addedBy},
		Playlist:   playlist,
		Conns:      conns,
	}, nil
}

type RemoveVideoParams struct {
	Index  int
	RoomId string
}

type RemoveVideoResponse struct {
	Playlist []Video
	Conns    []*wsconn.Conn
}

// RemoveVideo deletes the queue entry at the given index. An out-of-range
// index is not an error: the unchanged queue is still broadcast.
func (s *service) RemoveVideo(ctx context.Context, params *RemoveVideoParams) (RemoveVideoResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	if err := s.roomRepo.RemoveVideoAt(ctx, &room.RemoveVideoParams{
		Index:  params.Index,
		RoomId: params.RoomId,
	}); err != nil && !errors.Is(err, room.ErrVideoNotFound) {
		return RemoveVideoResponse{}, fmt.Errorf("failed to remove video: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, params.RoomId)
	if err != nil {
		return RemoveVideoResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return RemoveVideoResponse{}, err
	}

	return RemoveVideoResponse{
		Playlist: playlist,
		Conns:    conns,
	}, nil
}

type PlayNextParams struct {
	RoomId string
}

type PlayNextResponse struct {
	Advanced bool
	Playlist []Video
	Action   *VideoAction
	Conns    []*wsconn.Conn
}

// PlayNext advances the queue: the front item becomes the current video,
// paused at position zero. An empty queue leaves the player untouched.
func (s *service) PlayNext(ctx context.Context, params *PlayNextParams) (PlayNextResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	advanced, playlist, action, err := s.playNext(ctx, params.RoomId)
	if err != nil {
		return PlayNextResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return PlayNextResponse{}, err
	}

	return PlayNextResponse{
		Advanced: advanced,
		Playlist: playlist,
		Action:   action,
		Conns:    conns,
	}, nil
}

// playNext must be called with the room lock held.
func (s *service) playNext(ctx context.Context, roomId string) (bool, []Video, *VideoAction, error) {
	video, err := s.roomRepo.PopFirstVideo(ctx, roomId)
	if err != nil {
		if errors.Is(err, room.ErrQueueEmpty) {
			playlist, err := s.getPlaylist(ctx, roomId)
			if err != nil {
				return false, nil, nil, err
			}

			return false, playlist, nil, nil
		}

		return false, nil, nil, fmt.Errorf("failed to pop first video: %w", err)
	}

	if err := s.roomRepo.SetPlayer(ctx, &room.SetPlayerParams{
		VideoId:     video.VideoId,
		CurrentTime: 0,
		IsPaused:    true,
		RoomId:      roomId,
	}); err != nil {
		return false, nil, nil, fmt.Errorf("failed to set player: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, roomId)
	if err != nil {
		return false, nil, nil, err
	}

	return true, playlist, &VideoAction{Kind: ActionLoad, VideoId: video.VideoId, Time: 0}, nil
}
