package wsrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchroom/server/pkg/wsconn"
)

func TestServeConnDispatch(t *testing.T) {
	router := New()

	handled := make(chan string, 2)
	router.Handle("PING", func(ctx context.Context, conn *wsconn.Conn, payload json.RawMessage) error {
		var data struct {
			Value string `json:"value"`
		}
		require.NoError(t, json.Unmarshal(payload, &data))
		handled <- GetMessageTypeFromCtx(ctx) + ":" + data.Value
		return nil
	})

	unknown := make(chan string, 2)
	router.OnError(func(ctx context.Context, conn *wsconn.Conn, msgType string, err error) {
		if err == ErrUnknownMessageType {
			unknown <- msgType
		}
	})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		router.ServeConn(r.Context(), wsconn.New(conn))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    "PING",
		"payload": map[string]string{"value": "hello"},
	}))
	assert.Equal(t, "PING:hello", <-handled)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "NOPE"}))
	assert.Equal(t, "NOPE", <-unknown)
}
