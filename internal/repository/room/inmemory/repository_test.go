package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchroom/server/internal/repository/room"
)

func TestMembers(t *testing.T) {
	r := NewRepo()
	ctx := context.Background()

	count, err := r.GetMembersCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, r.SetMember(ctx, &room.SetMemberParams{ConnId: "c1", Username: "alice", RoomId: "r"}))
	require.NoError(t, r.SetMember(ctx, &room.SetMemberParams{ConnId: "c2", Username: "bob", RoomId: "r"}))

	names, err := r.GetMemberNames(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names, "join order is preserved")

	username, err := r.GetMemberUsername(ctx, "r", "c2")
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	_, err = r.GetMemberUsername(ctx, "r", "missing")
	assert.ErrorIs(t, err, room.ErrMemberNotFound)

	require.NoError(t, r.RemoveMember(ctx, &room.RemoveMemberParams{ConnId: "c1", RoomId: "r"}))

	ids, err := r.GetMemberIds(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)
}

func TestQueue(t *testing.T) {
	r := NewRepo()
	ctx := context.Background()

	_, err := r.PopFirstVideo(ctx, "r")
	assert.ErrorIs(t, err, room.ErrQueueEmpty)

	require.NoError(t, r.AddVideo(ctx, &room.AddVideoParams{EntryId: "e1", VideoId: "v1", Title: "first", AddedBy: "alice", RoomId: "r"}))
	require.NoError(t, r.AddVideo(ctx, &room.AddVideoParams{EntryId: "e2", VideoId: "v2", Title: "second", AddedBy: "bob", RoomId: "r"}))

	length, err := r.GetVideosLength(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 2, length)

	err = r.RemoveVideoAt(ctx, &room.RemoveVideoParams{Index: 5, RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrVideoNotFound)

	video, err := r.PopFirstVideo(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "v1", video.VideoId)

	videos, err := r.GetVideos(ctx, "r")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "v2", videos[0].VideoId)

	require.NoError(t, r.RemoveVideoAt(ctx, &room.RemoveVideoParams{Index: 0, RoomId: "r"}))

	length, err = r.GetVideosLength(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 0, length)
}

func TestPlayer(t *testing.T) {
	r := NewRepo()
	ctx := context.Background()

	_, err := r.GetPlayer(ctx, "r")
	assert.ErrorIs(t, err, room.ErrPlayerNotFound)

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{VideoId: "v1", CurrentTime: 42.5, IsPaused: true, RoomId: "r"}))

	player, err := r.GetPlayer(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "v1", player.VideoId)
	assert.Equal(t, 42.5, player.CurrentTime)
	assert.True(t, player.IsPaused)
}

func TestSkipVotes(t *testing.T) {
	r := NewRepo()
	ctx := context.Background()

	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c1", RoomId: "r"}))
	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c1", RoomId: "r"}))
	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c2", RoomId: "r"}))

	count, err := r.GetSkipVotesCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "votes are keyed by connection")

	require.NoError(t, r.RemoveSkipVote(ctx, &room.RemoveSkipVoteParams{ConnId: "c1", RoomId: "r"}))

	count, err = r.GetSkipVotesCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, r.ClearSkipVotes(ctx, "r"))

	count, err = r.GetSkipVotesCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPolls(t *testing.T) {
	r := NewRepo()
	ctx := context.Background()

	require.NoError(t, r.SetPoll(ctx, &room.SetPollParams{
		PollId:   "p1",
		Question: "next genre?",
		Options:  []string{"jazz", "metal"},
		RoomId:   "r",
	}))

	ids, err := r.GetPollIds(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	err = r.AddPollVote(ctx, &room.AddPollVoteParams{PollId: "missing", ConnId: "c1", OptionIndex: 0, RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrPollNotFound)

	require.NoError(t, r.AddPollVote(ctx, &room.AddPollVoteParams{PollId: "p1", ConnId: "c1", OptionIndex: 1, RoomId: "r"}))

	err = r.AddPollVote(ctx, &room.AddPollVoteParams{PollId: "p1", ConnId: "c1", OptionIndex: 0, RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrAlreadyVoted)

	poll, err := r.GetPoll(ctx, &room.GetPollParams{PollId: "p1", RoomId: "r"})
	require.NoError(t, err)
	assert.Equal(t, "next genre?", poll.Question)
	assert.Equal(t, 1, poll.Options[1].Votes)
	assert.Equal(t, map[string]int{"c1": 1}, poll.Voters)

	require.NoError(t, r.RemovePollVoter(ctx, &room.RemovePollVoterParams{ConnId: "c1", RoomId: "r"}))

	poll, err = r.GetPoll(ctx, &room.GetPollParams{PollId: "p1", RoomId: "r"})
	require.NoError(t, err)
	assert.Equal(t, 0, poll.Options[1].Votes)
	assert.Empty(t, poll.Voters)

	sum := 0
	for _, option := range poll.Options {
		sum += option.Votes
	}
	assert.Equal(t, len(poll.Voters), sum, "vote counts always add up to the voter set")
}
