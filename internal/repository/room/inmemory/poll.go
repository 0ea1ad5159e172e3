package inmemory

import (
	"context"
	"maps"
	"slices"

	"github.com/watchroom/server/internal/repository/room"
)

func (r *repo) SetPoll(_ context.Context, params *room.SetPollParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.getRoom(params.RoomId)

	options := make([]room.PollOption, 0, len(params.Options))
	for _, text := range params.Options {
		options = append(options, room.PollOption{Text: text})
	}

	if _, ok := state.polls[params.PollId]; !ok {
		state.pollIds = append(state.pollIds, params.PollId)
	}
	state.polls[params.PollId] = &pollState{
		question: params.Question,
		options:  options,
		voters:   make(map[string]int),
	}

	return nil
}

func (r *repo) GetPoll(_ context.Context, params *room.GetPollParams) (room.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[params.RoomId]
	if !ok {
		return room.Poll{}, room.ErrPollNotFound
	}

	poll, ok := state.polls[params.PollId]
	if !ok {
		return room.Poll{}, room.ErrPollNotFound
	}

	return room.Poll{
		Question: poll.question,
		Options:  slices.Clone(poll.options),
		Voters:   maps.Clone(poll.voters),
	}, nil
}

// GetPollIds returns poll ids in creation order.
func (r *repo) GetPollIds(_ context.Context, roomId string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rooms[roomId]
	if !ok {
		return []string{}, nil
	}

	return slices.Clone(state.pollIds), nil
}

// AddPollVote records the voter and increments the chosen option in one
// step, so a voter can never be counted twice.
func (r *repo) AddPollVote(_ context.Context, params *room.AddPollVoteParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.rooms[params.RoomId]
	if !ok {
		return room.ErrPollNotFound
	}

	poll, ok := state.polls[params.PollId]
	if !ok {
		return room.ErrPollNotFound
	}

	if _, voted := poll.voters[params.ConnId]; voted {
		return room.ErrAlreadyVoted
	}

	poll.voters[params.ConnId] = params.OptionIndex
	poll.options[params.OptionIndex].Votes++

	return nil
}

// RemovePollVoter drops the voter from every poll in the room, decrementing
// the option it had voted for.
func (r *repo) RemovePollVoter(_ context.Context, params *room.RemovePollVoterParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.rooms[params.RoomId]
	if !ok {
		return nil
	}

	for _, poll := range state.polls {
		optionIndex, voted := poll.voters[params.ConnId]
		if !voted {
			continue
		}

		delete(poll.voters, params.ConnId)
		poll.options[optionIndex].Votes--
	}

	return nil
}
