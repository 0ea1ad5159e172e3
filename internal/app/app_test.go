package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	connInmemory "github.com/watchroom/server/internal/repository/connection/inmemory"
	roomRedis "github.com/watchroom/server/internal/repository/room/redis"
	"github.com/watchroom/server/internal/service/room"
	"github.com/watchroom/server/pkg/wsconn"
)

func TestConfigValidate(t *testing.T) {
	cfg := &AppConfig{
		Storage:       StorageMemory,
		DefaultRoomId: "main",
		MembersLimit:  9,
		QueueLimit:    25,
	}
	require.NoError(t, cfg.Validate())

	cfg.Storage = "postgres"
	assert.Error(t, cfg.Validate())

	cfg.Storage = StorageRedis
	cfg.QueueLimit = 0
	assert.Error(t, cfg.Validate())
}

// TestRoomLifecycleOverRedis drives a full room session through the redis
// backend: join, queue a video, advance, vote and leave.
func TestRoomLifecycleOverRedis(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	roomRepo := roomRedis.NewRepo(rc, time.Hour)
	connRepo := connInmemory.NewRepo()
	service := room.NewService(roomRepo, connRepo, slog.Default(), &room.Config{
		MembersLimit: 9,
		QueueLimit:   25,
	})

	ctx := context.Background()

	joinResp, err := service.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:     &wsconn.Conn{},
		ConnId:   "conn-1",
		Username: "alice",
		RoomId:   "movie-night",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, joinResp.MemberNames)
	assert.Nil(t, joinResp.State.Player, "fresh room must have no player")

	_, err = service.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:     &wsconn.Conn{},
		ConnId:   "conn-2",
		Username: "bob",
		RoomId:   "movie-night",
	})
	require.NoError(t, err)

	addResp, err := service.AddVideo(ctx, &room.AddVideoParams{
		VideoId:  "dQw4w9WgXcQ",
		Title:    "some video",
		SenderId: "conn-1",
		RoomId:   "movie-night",
	})
	require.NoError(t, err)
	require.Len(t, addResp.Playlist, 1)
	assert.Equal(t, "alice", addResp.AddedVideo.AddedBy)
	assert.Len(t, addResp.Conns, 2)

	nextResp, err := service.PlayNext(ctx, &room.PlayNextParams{RoomId: "movie-night"})
	require.NoError(t, err)
	require.True(t, nextResp.Advanced)
	assert.Empty(t, nextResp.Playlist)
	require.NotNil(t, nextResp.Action)
	assert.Equal(t, room.ActionLoad, nextResp.Action.Kind)
	assert.Equal(t, "dQw4w9WgXcQ", nextResp.Action.VideoId)

	voteResp, err := service.VoteSkip(ctx, &room.VoteSkipParams{
		ConnId: "conn-1",
		RoomId: "movie-night",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, voteResp.Votes)
	assert.Equal(t, 1, voteResp.Needed)
	assert.True(t, voteResp.ThresholdReached)
	assert.False(t, voteResp.Advanced, "empty queue must not advance")

	leaveResp, err := service.DisconnectMember(ctx, &room.DisconnectMemberParams{
		ConnId: "conn-2",
		RoomId: "movie-night",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", leaveResp.Username)
	assert.Equal(t, []string{"alice"}, leaveResp.MemberNames)
}
