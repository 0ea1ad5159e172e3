// Package wsconn wraps a websocket connection with a write mutex.
// gorilla/websocket forbids concurrent write calls on one connection, and
// room broadcasts run on the sending member's goroutine, so two members'
// handlers may target the same peer at once.
package wsconn

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func New(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteJSON(v)
}

// ReadJSON is not serialized: a connection has exactly one reader goroutine.
func (c *Conn) ReadJSON(v any) error {
	return c.ws.ReadJSON(v)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
