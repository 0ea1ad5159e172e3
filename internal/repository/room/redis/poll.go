package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/watchroom/server/internal/repository/room"
)

func (r repo) getPollListKey(roomId string) string {
	return "room:" + roomId + ":polls"
}

func (r repo) getPollKey(roomId, pollId string) string {
	return "room:" + roomId + ":poll:" + pollId
}

func (r repo) getPollOptionsKey(roomId, pollId string) string {
	return r.getPollKey(roomId, pollId) + ":options"
}

func (r repo) getPollVotesKey(roomId, pollId string) string {
	return r.getPollKey(roomId, pollId) + ":votes"
}

func (r repo) getPollVotersKey(roomId, pollId string) string {
	return r.getPollKey(roomId, pollId) + ":voters"
}

func (r repo) SetPoll(ctx context.Context, params *room.SetPollParams) error {
	pipe := r.rc.TxPipeline()

	pollKey := r.getPollKey(params.RoomId, params.PollId)
	pipe.HSet(ctx, pollKey, "question", params.Question)
	pipe.Expire(ctx, pollKey, r.expireDuration)

	optionsKey := r.getPollOptionsKey(params.RoomId, params.PollId)
	for _, text := range params.Options {
		pipe.RPush(ctx, optionsKey, text)
	}
	pipe.Expire(ctx, optionsKey, r.expireDuration)

	pollListKey := r.getPollListKey(params.RoomId)
	r.addWithIncrement(ctx, pipe, pollListKey, params.PollId)
	pipe.Expire(ctx, pollListKey, r.expireDuration)

	return r.executePipe(ctx, pipe)
}

func (r repo) GetPoll(ctx context.Context, params *room.GetPollParams) (room.Poll, error) {
	question, err := r.rc.HGet(ctx, r.getPollKey(params.RoomId, params.PollId), "question").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return room.Poll{}, room.ErrPollNotFound
		}

		return room.Poll{}, err
	}

	texts, err := r.rc.LRange(ctx, r.getPollOptionsKey(params.RoomId, params.PollId), 0, -1).Result()
	if err != nil {
		return room.Poll{}, err
	}

	votes, err := r.rc.HGetAll(ctx, r.getPollVotesKey(params.RoomId, params.PollId)).Result()
	if err != nil {
		return room.Poll{}, err
	}

	options := make([]room.PollOption, 0, len(texts))
	for i, text := range texts {
		count, _ := strconv.Atoi(votes[strconv.Itoa(i)])
		options = append(options, room.PollOption{Text: text, Votes: count})
	}

	rawVoters, err := r.rc.HGetAll(ctx, r.getPollVotersKey(params.RoomId, params.PollId)).Result()
	if err != nil {
		return room.Poll{}, err
	}

	voters := make(map[string]int, len(rawVoters))
	for connId, optionIndex := range rawVoters {
		index, _ := strconv.Atoi(optionIndex)
		voters[connId] = index
	}

	return room.Poll{
		Question: question,
		Options:  options,
		Voters:   voters,
	}, nil
}

func (r repo) GetPollIds(ctx context.Context, roomId string) ([]string, error) {
	return r.rc.ZRange(ctx, r.getPollListKey(roomId), 0, -1).Result()
}

// AddPollVote records the voter and increments the chosen option in one
// script, so the voter set and the vote counts can never drift apart.
func (r repo) AddPollVote(ctx context.Context, params *room.AddPollVoteParams) error {
	exists, err := r.rc.Exists(ctx, r.getPollKey(params.RoomId, params.PollId)).Result()
	if err != nil {
		return err
	}

	if exists == 0 {
		return room.ErrPollNotFound
	}

	keys := []string{
		r.getPollVotersKey(params.RoomId, params.PollId),
		r.getPollVotesKey(params.RoomId, params.PollId),
	}
	added, err := r.rc.EvalSha(ctx, r.pollVoteScript, keys, params.ConnId, strconv.Itoa(params.OptionIndex)).Int()
	if err != nil {
		return err
	}

	if added == 0 {
		return room.ErrAlreadyVoted
	}

	return nil
}

func (r repo) RemovePollVoter(ctx context.Context, params *room.RemovePollVoterParams) error {
	pollIds, err := r.GetPollIds(ctx, params.RoomId)
	if err != nil {
		return err
	}

	for _, pollId := range pollIds {
		votersKey := r.getPollVotersKey(params.RoomId, pollId)

		optionIndex, err := r.rc.HGet(ctx, votersKey, params.ConnId).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}

			return err
		}

		pipe := r.rc.TxPipeline()
		pipe.HDel(ctx, votersKey, params.ConnId)
		pipe.HIncrBy(ctx, r.getPollVotesKey(params.RoomId, pollId), optionIndex, -1)
		if err := r.executePipe(ctx, pipe); err != nil {
			return err
		}
	}

	return nil
}
