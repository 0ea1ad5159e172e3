package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/watchroom/server/internal/service/room"
	"github.com/watchroom/server/pkg/wsconn"
)

// joinRoom upgrades the connection, registers the member and serves its
// messages until disconnect. An absent room id resolves to the default
// room.
func (c *controller) joinRoom(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")
	if roomId == "" {
		roomId = c.defaultRoomId
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		username = "Guest"
	}

	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	conn := wsconn.New(ws)

	connId := uuid.NewString()

	joinResp, err := c.roomService.JoinRoom(r.Context(), &room.JoinRoomParams{
		Conn:     conn,
		ConnId:   connId,
		Username: username,
		RoomId:   roomId,
	})
	if err != nil {
		c.logger.InfoContext(r.Context(), "failed to join room", "error", err)
		c.writeError(r.Context(), conn, err)
		conn.Close()
		return
	}
	defer c.disconnect(r.Context(), connId, roomId)

	if err := c.writeToConn(r.Context(), conn, &Output{
		Type:    "ROOM_STATE",
		Payload: joinResp.State,
	}); err != nil {
		return
	}

	c.broadcastMemberList(r.Context(), joinResp.Conns, joinResp.MemberNames)
	c.broadcastSystemMessage(r.Context(), joinResp.Conns, username+" joined the room")

	ctx := context.WithValue(r.Context(), roomIdCtxKey, roomId)
	ctx = context.WithValue(ctx, connIdCtxKey, connId)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "conn closed", "error", err)
	}
}

func (c *controller) disconnect(ctx context.Context, connId, roomId string) {
	disconnectResp, err := c.roomService.DisconnectMember(ctx, &room.DisconnectMemberParams{
		ConnId: connId,
		RoomId: roomId,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect member", "error", err)
		return
	}

	username := disconnectResp.Username
	if username == "" {
		username = "Someone"
	}

	c.broadcastMemberList(ctx, disconnectResp.Conns, disconnectResp.MemberNames)
	c.broadcastSystemMessage(ctx, disconnectResp.Conns, username+" left the room")
}
