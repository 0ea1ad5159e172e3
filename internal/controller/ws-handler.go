package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/watchroom/server/internal/service/room"
	"github.com/watchroom/server/pkg/wsconn"
	"github.com/watchroom/server/pkg/ytvideoid"
)

func (c *controller) readInput(payload json.RawMessage, dst any) error {
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if validationErrors, ok := c.validate.Validate(dst); !ok {
		return fmt.Errorf("invalid payload: %s", validationErrors[0].Message)
	}

	return nil
}

// handleAlive is a liveness ping; receiving it is the whole point.
func (c *controller) handleAlive(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	return nil
}

func (c *controller) handleGetState(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	state, err := c.roomService.GetRoomState(ctx, c.getRoomIdFromCtx(ctx))
	if err != nil {
		return err
	}

	return c.writeToConn(ctx, conn, &Output{
		Type:    "ROOM_STATE",
		Payload: state,
	})
}

func (c *controller) handleChatMessage(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Text string `json:"text" validate:"required,max=500"`
		Time string `json:"time"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	resp, err := c.roomService.ChatMessage(ctx, &room.ChatMessageParams{
		Text:     input.Text,
		Time:     input.Time,
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type: "CHAT_MESSAGE",
		Payload: map[string]any{
			"username": resp.Username,
			"text":     input.Text,
			"time":     input.Time,
		},
	})

	return nil
}

func (c *controller) handleVideoAction(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Kind  string  `json:"kind" validate:"required,oneof=play pause seek load"`
		Video string  `json:"video"`
		Time  float64 `json:"time" validate:"gte=0"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	videoId := ""
	if room.ActionKind(input.Kind) == room.ActionLoad {
		var err error
		videoId, err = ytvideoid.Extract(input.Video)
		if err != nil {
			return err
		}
	}

	resp, err := c.roomService.ApplyVideoAction(ctx, &room.VideoActionParams{
		Kind:     room.ActionKind(input.Kind),
		VideoId:  videoId,
		Time:     input.Time,
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "VIDEO_ACTION",
		Payload: resp.Action,
	})

	return nil
}

func (c *controller) handleAddVideo(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Video string `json:"video" validate:"required"`
		Title string `json:"title" validate:"max=200"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	videoId, err := ytvideoid.Extract(input.Video)
	if err != nil {
		return err
	}

	resp, err := c.roomService.AddVideo(ctx, &room.AddVideoParams{
		VideoId:  videoId,
		Title:    input.Title,
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "PLAYLIST_UPDATED",
		Payload: map[string]any{"playlist": resp.Playlist},
	})
	c.broadcastSystemMessage(ctx, resp.Conns, resp.AddedVideo.AddedBy+" added "+resp.AddedVideo.Title+" to the queue")

	return nil
}

func (c *controller) handleRemoveVideo(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Index int `json:"index" validate:"gte=0"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	resp, err := c.roomService.RemoveVideo(ctx, &room.RemoveVideoParams{
		Index:  input.Index,
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "PLAYLIST_UPDATED",
		Payload: map[string]any{"playlist": resp.Playlist},
	})

	return nil
}

func (c *controller) handlePlayNext(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	resp, err := c.roomService.PlayNext(ctx, &room.PlayNextParams{
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	if !resp.Advanced {
		c.broadcastSystemMessage(ctx, resp.Conns, "no next video in the queue")
		return nil
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "PLAYLIST_UPDATED",
		Payload: map[string]any{"playlist": resp.Playlist},
	})
	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "VIDEO_ACTION",
		Payload: resp.Action,
	})

	return nil
}

func (c *controller) handleVoteSkip(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	resp, err := c.roomService.VoteSkip(ctx, &room.VoteSkipParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type: "SKIP_VOTES",
		Payload: map[string]any{
			"votes":  resp.Votes,
			"needed": resp.Needed,
		},
	})

	if !resp.ThresholdReached {
		return nil
	}

	if !resp.Advanced {
		c.broadcastSystemMessage(ctx, resp.Conns, "no next video in the queue")
		return nil
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "PLAYLIST_UPDATED",
		Payload: map[string]any{"playlist": resp.Playlist},
	})
	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "VIDEO_ACTION",
		Payload: resp.Action,
	})
	c.broadcastSystemMessage(ctx, resp.Conns, "skip vote passed")

	return nil
}

func (c *controller) handleReaction(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Reaction string `json:"reaction" validate:"required,max=50"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	resp, err := c.roomService.Reaction(ctx, &room.ReactionParams{
		Reaction: input.Reaction,
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type: "REACTION",
		Payload: map[string]any{
			"username": resp.Username,
			"reaction": input.Reaction,
		},
	})

	return nil
}

func (c *controller) handleCreatePoll(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		Question string   `json:"question" validate:"required,max=300"`
		Options  []string `json:"options" validate:"required,min=2,max=10"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	resp, err := c.roomService.CreatePoll(ctx, &room.CreatePollParams{
		Question: input.Question,
		Options:  input.Options,
		SenderId: c.getConnIdFromCtx(ctx),
		RoomId:   c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "POLL_CREATED",
		Payload: map[string]any{"poll": resp.Poll},
	})

	return nil
}

func (c *controller) handleVotePoll(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
	var input struct {
		PollId string `json:"poll_id" validate:"required"`
		Option int    `json:"option" validate:"gte=0"`
	}
	if err := c.readInput(payload, &input); err != nil {
		return err
	}

	resp, err := c.roomService.VotePoll(ctx, &room.VotePollParams{
		PollId:      input.PollId,
		OptionIndex: input.Option,
		ConnId:      c.getConnIdFromCtx(ctx),
		RoomId:      c.getRoomIdFromCtx(ctx),
	})
	if err != nil {
		// votes for vanished polls are dropped without a reply
		if errors.Is(err, room.ErrPollNotFound) {
			return nil
		}

		if errors.Is(err, room.ErrAlreadyVoted) {
			c.writeSystemMessage(ctx, conn, "you have already voted in this poll")
			return nil
		}

		return err
	}

	c.broadcast(ctx, resp.Conns, &Output{
		Type:    "POLL_UPDATED",
		Payload: map[string]any{"poll": resp.Poll},
	})

	return nil
}
