package redis

import (
	"context"

	"github.com/watchroom/server/internal/repository/room"
)

func (r repo) getPlayerKey(roomId string) string {
	return "room:" + roomId + ":player"
}

func (r repo) SetPlayer(ctx context.Context, params *room.SetPlayerParams) error {
	playerKey := r.getPlayerKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, playerKey,
		"video_id", params.VideoId,
		"current_time", params.CurrentTime,
		"is_paused", params.IsPaused,
	)
	pipe.Expire(ctx, playerKey, r.expireDuration)

	return r.executePipe(ctx, pipe)
}

func (r repo) GetPlayer(ctx context.Context, roomId string) (room.Player, error) {
	playerKey := r.getPlayerKey(roomId)

	exists, err := r.rc.Exists(ctx, playerKey).Result()
	if err != nil {
		return room.Player{}, err
	}

	if exists == 0 {
		return room.Player{}, room.ErrPlayerNotFound
	}

	var player room.Player
	if err := r.rc.HGetAll(ctx, playerKey).Scan(&player); err != nil {
		return room.Player{}, err
	}

	return player, nil
}
