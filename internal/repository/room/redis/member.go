package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/watchroom/server/internal/repository/room"
)

func (r repo) getMemberKey(roomId, connId string) string {
	return "room:" + roomId + ":member:" + connId
}

func (r repo) getMemberListKey(roomId string) string {
	return "room:" + roomId + ":memberlist"
}

func (r repo) SetMember(ctx context.Context, params *room.SetMemberParams) error {
	pipe := r.rc.TxPipeline()

	memberKey := r.getMemberKey(params.RoomId, params.ConnId)
	pipe.HSet(ctx, memberKey, "username", params.Username)
	pipe.Expire(ctx, memberKey, r.expireDuration)

	memberListKey := r.getMemberListKey(params.RoomId)
	r.addWithIncrement(ctx, pipe, memberListKey, params.ConnId)
	pipe.Expire(ctx, memberListKey, r.expireDuration)

	return r.executePipe(ctx, pipe)
}

func (r repo) RemoveMember(ctx context.Context, params *room.RemoveMemberParams) error {
	res, err := r.rc.ZRem(ctx, r.getMemberListKey(params.RoomId), params.ConnId).Result()
	if err != nil {
		return err
	}

	if res == 0 {
		return room.ErrMemberNotFound
	}

	return r.rc.Del(ctx, r.getMemberKey(params.RoomId, params.ConnId)).Err()
}

func (r repo) GetMemberUsername(ctx context.Context, roomId, connId string) (string, error) {
	username, err := r.rc.HGet(ctx, r.getMemberKey(roomId, connId), "username").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", room.ErrMemberNotFound
		}

		return "", err
	}

	return username, nil
}

func (r repo) GetMemberNames(ctx context.Context, roomId string) ([]string, error) {
	connIds, err := r.rc.ZRange(ctx, r.getMemberListKey(roomId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(connIds))
	for _, connId := range connIds {
		username, err := r.GetMemberUsername(ctx, roomId, connId)
		if err != nil {
			if errors.Is(err, room.ErrMemberNotFound) {
				continue
			}

			return nil, err
		}

		names = append(names, username)
	}

	return names, nil
}

func (r repo) GetMembersCount(ctx context.Context, roomId string) (int, error) {
	count, err := r.rc.ZCard(ctx, r.getMemberListKey(roomId)).Result()
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r repo) GetMemberIds(ctx context.Context, roomId string) ([]string, error) {
	return r.rc.ZRange(ctx, r.getMemberListKey(roomId), 0, -1).Result()
}
