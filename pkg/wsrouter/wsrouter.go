package wsrouter

import (
	"context"
	"encoding/json"

	"github.com/watchroom/server/pkg/wsconn"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc handles a single inbound message. Handlers surface errors to
// the client themselves; a returned error is reported through OnError only.
type HandlerFunc func(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error

type ErrorFunc func(ctx context.Context, conn *wsconn.Conn, msgType string, err error)

type WSRouter struct {
	routes  map[string]HandlerFunc
	onError ErrorFunc
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

// OnError registers a callback invoked for handler errors and unknown
// message types.
func (r *WSRouter) OnError(f ErrorFunc) {
	r.onError = f
}

// ServeConn reads messages until the connection fails, dispatching each one
// to its registered handler. Messages are handled to completion in order.
func (r *WSRouter) ServeConn(ctx context.Context, conn *wsconn.Conn) error {
	defer conn.Close()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			if r.onError != nil {
				r.onError(ctx, conn, msg.Type, ErrUnknownMessageType)
			}
			continue
		}

		msgCtx := context.WithValue(ctx, messageTypeKey, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil {
			if r.onError != nil {
				r.onError(msgCtx, conn, msg.Type, err)
			}
		}
	}
}
