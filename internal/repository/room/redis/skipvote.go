package redis

import (
	"context"

	"github.com/watchroom/server/internal/repository/room"
)

func (r repo) getSkipVotesKey(roomId string) string {
	return "room:" + roomId + ":skip-votes"
}

// AddSkipVote relies on set semantics for idempotency.
func (r repo) AddSkipVote(ctx context.Context, params *room.AddSkipVoteParams) error {
	skipVotesKey := r.getSkipVotesKey(params.RoomId)

	pipe := r.rc.TxPipeline()
	pipe.SAdd(ctx, skipVotesKey, params.ConnId)
	pipe.Expire(ctx, skipVotesKey, r.expireDuration)

	return r.executePipe(ctx, pipe)
}

func (r repo) RemoveSkipVote(ctx context.Context, params *room.RemoveSkipVoteParams) error {
	return r.rc.SRem(ctx, r.getSkipVotesKey(params.RoomId), params.ConnId).Err()
}

func (r repo) GetSkipVotesCount(ctx context.Context, roomId string) (int, error) {
	count, err := r.rc.SCard(ctx, r.getSkipVotesKey(roomId)).Result()
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r repo) ClearSkipVotes(ctx context.Context, roomId string) error {
	return r.rc.Del(ctx, r.getSkipVotesKey(roomId)).Err()
}
