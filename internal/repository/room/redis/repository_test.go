package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchroom/server/internal/repository/room"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour)
}

func TestMembers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetMember(ctx, &room.SetMemberParams{ConnId: "c1", Username: "alice", RoomId: "r"}))
	require.NoError(t, r.SetMember(ctx, &room.SetMemberParams{ConnId: "c2", Username: "bob", RoomId: "r"}))

	names, err := r.GetMemberNames(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names, "join order is preserved")

	count, err := r.GetMembersCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = r.GetMemberUsername(ctx, "r", "missing")
	assert.ErrorIs(t, err, room.ErrMemberNotFound)

	require.NoError(t, r.RemoveMember(ctx, &room.RemoveMemberParams{ConnId: "c1", RoomId: "r"}))

	err = r.RemoveMember(ctx, &room.RemoveMemberParams{ConnId: "c1", RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrMemberNotFound)

	ids, err := r.GetMemberIds(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)
}

func TestQueue(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.PopFirstVideo(ctx, "r")
	assert.ErrorIs(t, err, room.ErrQueueEmpty)

	require.NoError(t, r.AddVideo(ctx, &room.AddVideoParams{EntryId: "e1", VideoId: "v1", Title: "first", AddedBy: "alice", RoomId: "r"}))
	require.NoError(t, r.AddVideo(ctx, &room.AddVideoParams{EntryId: "e2", VideoId: "v2", Title: "second", AddedBy: "bob", RoomId: "r"}))

	videos, err := r.GetVideos(ctx, "r")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].VideoId, "insertion order is preserved")
	assert.Equal(t, "v2", videos[1].VideoId)

	err = r.RemoveVideoAt(ctx, &room.RemoveVideoParams{Index: 5, RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrVideoNotFound)

	video, err := r.PopFirstVideo(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "v1", video.VideoId)
	assert.Equal(t, "first", video.Title)
	assert.Equal(t, "alice", video.AddedBy)

	length, err := r.GetVideosLength(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 1, length)
}

func TestPlayer(t *testing.T) {
	r := newTestRepo(t)
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
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c1", RoomId: "r"}))
	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c1", RoomId: "r"}))
	require.NoError(t, r.AddSkipVote(ctx, &room.AddSkipVoteParams{ConnId: "c2", RoomId: "r"}))

	count, err := r.GetSkipVotesCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "votes are keyed by connection")

	require.NoError(t, r.ClearSkipVotes(ctx, "r"))

	count, err = r.GetSkipVotesCount(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPolls(t *testing.T) {
	r := newTestRepo(t)
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
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "jazz", poll.Options[0].Text)
	assert.Equal(t, 1, poll.Options[1].Votes)
	assert.Equal(t, map[string]int{"c1": 1}, poll.Voters)

	require.NoError(t, r.RemovePollVoter(ctx, &room.RemovePollVoterParams{ConnId: "c1", RoomId: "r"}))

	poll, err = r.GetPoll(ctx, &room.GetPollParams{PollId: "p1", RoomId: "r"})
	require.NoError(t, err)
	assert.Equal(t, 0, poll.Options[1].Votes)
	assert.Empty(t, poll.Voters)

	require.NoError(t, r.AddPollVote(ctx, &room.AddPollVoteParams{PollId: "p1", ConnId: "c2", OptionIndex: 0, RoomId: "r"}))
	require.NoError(t, r.AddPollVote(ctx, &room.AddPollVoteParams{PollId: "p1", ConnId: "c3", OptionIndex: 1, RoomId: "r"}))

	poll, err = r.GetPoll(ctx, &room.GetPollParams{PollId: "p1", RoomId: "r"})
	require.NoError(t, err)
	sum := 0
	for _, option := range poll.Options {
		sum += option.Votes
	}
	assert.Equal(t, len(poll.Voters), sum, "vote counts always add up to the voter set")

	_, err = r.GetPoll(ctx, &room.GetPollParams{PollId: "missing", RoomId: "r"})
	assert.ErrorIs(t, err, room.ErrPollNotFound)
}
