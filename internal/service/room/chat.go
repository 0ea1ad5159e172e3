package room

import (
	"context"
	"fmt"

	"github.com/watchroom/server/pkg/wsconn"
)

type ChatMessageParams struct {
	Text     string
	Time     string
	SenderId string
	RoomId   string
}

type ChatMessageResponse struct {
	Username string
	Conns    []*wsconn.Conn
}

// ChatMessage relays a message to the room; no chat state is stored.
func (s *service) ChatMessage(ctx context.Context, params *ChatMessageParams) (ChatMessageResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	username, err := s.roomRepo.GetMemberUsername(ctx, params.RoomId, params.SenderId)
	if err != nil {
		return ChatMessageResponse{}, fmt.Errorf("failed to get member username: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return ChatMessageResponse{}, err
	}

	return ChatMessageResponse{
		Username: username,
		Conns:    conns,
	}, nil
}

type ReactionParams struct {
	Reaction string
	SenderId string
	RoomId   string
}

type ReactionResponse struct {
	Username string
	Conns    []*wsconn.Conn
}

// Reaction relays an ephemeral reaction; nothing is stored.
func (s *service) Reaction(ctx context.Context, params *ReactionParams) (ReactionResponse, error) {
	unlock := s.lockRoom(params.RoomId)
	defer unlock()

	username, err := s.roomRepo.GetMemberUsername(ctx, params.RoomId, params.SenderId)
	if err != nil {
		return ReactionResponse{}, fmt.Errorf("failed to get member username: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return ReactionResponse{}, err
	}

	return ReactionResponse{
		Username: username,
		Conns:    conns,
	}, nil
}
