package controller

import (
	"context"
	"errors"

	"github.com/watchroom/server/pkg/wsconn"
	"github.com/watchroom/server/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Handle("ALIVE", c.handleAlive)
	mux.Handle("GET_STATE", c.handleGetState)
	mux.Handle("CHAT_MESSAGE", c.handleChatMessage)
	mux.Handle("VIDEO_ACTION", c.handleVideoAction)
	mux.Handle("ADD_VIDEO", c.handleAddVideo)
	mux.Handle("REMOVE_VIDEO", c.handleRemoveVideo)
	mux.Handle("PLAY_NEXT", c.handlePlayNext)
	mux.Handle("VOTE_SKIP", c.handleVoteSkip)
	mux.Handle("REACTION", c.handleReaction)
	mux.Handle("CREATE_POLL", c.handleCreatePoll)
	mux.Handle("VOTE_POLL", c.handleVotePoll)

	mux.OnError(func(ctx context.Context, conn *wsconn.Conn, msgType string, err error) {
		if errors.Is(err, wsrouter.ErrUnknownMessageType) {
			c.logger.DebugContext(ctx, "unknown message type", "type", msgType)
		} else {
			c.logger.InfoContext(ctx, "failed to handle message", "type", msgType, "error", err)
		}

		c.writeError(ctx, conn, err)
	})

	return mux
}
