package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

type VideoActionParams struct {
	Kind     ActionKind
	VideoId  string
	Time     float64
	SenderId string
	RoomId   string
}

type VideoActionResponse struct {
	Action VideoAction
	Conns  []*wsconn.Conn
}

// ApplyVideoAction updates the authoritative player timeline.
//
// A load replaces the timeline and is broadcast to every member including
// the sender, so all clients resynchronize to the new video. Play, pause
// and seek are broadcast to everyone except the sender: the sender already
// reflects the state locally and re-applying its own action would loop.
func (s *service) ApplyVideoAction(ctx context.Context, params *VideoActionParams) (VideoActionResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	switch params.Kind {
	case ActionLoad:
		if err := s.roomRepo.SetPlayer(ctx, &room.SetPlayerParams{
			VideoId:     params.VideoId,
			CurrentTime: params.Time,
			IsPaused:    true,
			RoomId:      params.RoomId,
		}); err != nil {
			return VideoActionResponse{}, fmt.Errorf("failed to set player: %w", err)
		}

		conns, err := s.getConnsByRoomId(ctx, params.RoomId)
		if err != nil {
			return VideoActionResponse{}, err
		}

		return VideoActionResponse{
			Action: VideoAction{Kind: ActionLoad, VideoId: params.VideoId, Time: params.Time},
			Conns:  conns,
		}, nil

	case ActionPlay, ActionPause, ActionSeek:
		player, err := s.roomRepo.GetPlayer(ctx, params.RoomId)
		if err != nil {
			if !errors.Is(err, room.ErrPlayerNotFound) {
				return VideoActionResponse{}, fmt.Errorf("failed to get player: %w", err)
			}

			player = room.Player{
				VideoId:     params.VideoId,
				CurrentTime: params.Time,
				IsPaused:    params.Kind == ActionPause,
			}
		}

		player.CurrentTime = params.Time
		if params.Kind != ActionSeek {
			player.IsPaused = params.Kind == ActionPause
		}

		if err := s.roomRepo.SetPlayer(ctx, &room.SetPlayerParams{
			VideoId:     player.VideoId,
			CurrentTime: player.CurrentTime,
			IsPaused:    player.IsPaused,
			RoomId:      params.RoomId,
		}); err != nil {
			return VideoActionResponse{}, fmt.Errorf("failed to set player: %w", err)
		}

		conns, err := s.getConnsExceptSender(ctx, params.RoomId, params.SenderId)
		if err != nil {
			return VideoActionResponse{}, err
		}

		return VideoActionResponse{
			Action: VideoAction{Kind: params.Kind, VideoId: params.VideoId, Time: params.Time},
			Conns:  conns,
		}, nil

	default:
		return VideoActionResponse{}, fmt.Errorf("unknown action kind: %q", params.Kind)
	}
}
