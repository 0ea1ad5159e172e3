package controller

import (
	"context"

	"github.com/watchroom/server/pkg/wsconn"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (c *controller) writeToConn(ctx context.Context, conn *wsconn.Conn, output *Output) error {
	if err := conn.WriteJSON(output); err != nil {
		c.logger.DebugContext(ctx, "failed to write to conn", "type", output.Type, "error", err)
		return err
	}

	return nil
}

// broadcast delivers an event to every given connection. Delivery is
// best-effort: a failed write is logged and skipped, never retried.
func (c *controller) broadcast(ctx context.Context, conns []*wsconn.Conn, output *Output) {
	for _, conn := range conns {
		if err := conn.WriteJSON(output); err != nil {
			c.logger.DebugContext(ctx, "failed to broadcast", "type", output.Type, "error", err)
		}
	}
}

func (c *controller) writeError(ctx context.Context, conn *wsconn.Conn, err error) {
	c.writeToConn(ctx, conn, &Output{
		Type:    "ERROR",
		Payload: map[string]any{"message": err.Error()},
	})
}

func (c *controller) writeSystemMessage(ctx context.Context, conn *wsconn.Conn, text string) {
	c.writeToConn(ctx, conn, &Output{
		Type:    "SYSTEM_MESSAGE",
		Payload: map[string]any{"text": text},
	})
}

func (c *controller) broadcastSystemMessage(ctx context.Context, conns []*wsconn.Conn, text string) {
	c.broadcast(ctx, conns, &Output{
		Type:    "SYSTEM_MESSAGE",
		Payload: map[string]any{"text": text},
	})
}

func (c *controller) broadcastMemberList(ctx context.Context, conns []*wsconn.Conn, members []string) {
	c.broadcast(ctx, conns, &Output{
		Type:    "MEMBER_LIST",
		Payload: map[string]any{"members": members},
	})
}
