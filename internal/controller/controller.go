package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/watchroom/server/internal/service/room"
	"github.com/watchroom/server/pkg/validator"
	"github.com/watchroom/server/pkg/wsrouter"
)

type iRoomService interface {
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	DisconnectMember(context.Context, *room.DisconnectMemberParams) (room.DisconnectMemberResponse, error)
	GetRoomState(ctx context.Context, roomId string) (room.RoomState, error)
	ApplyVideoAction(context.Context, *room.VideoActionParams) (room.VideoActionResponse, error)
	AddVideo(context.Context, *room.AddVideoParams) (room.AddVideoResponse, error)
	RemoveVideo(context.Context, *room.RemoveVideoParams) (room.RemoveVideoResponse, error)
	PlayNext(context.Context, *room.PlayNextParams) (room.PlayNextResponse, error)
	VoteSkip(context.Context, *room.VoteSkipParams) (room.VoteSkipResponse, error)
	CreatePoll(context.Context, *room.CreatePollParams) (room.CreatePollResponse, error)
	VotePoll(context.Context, *room.VotePollParams) (room.VotePollResponse, error)
	ChatMessage(context.Context, *room.ChatMessageParams) (room.ChatMessageResponse, error)
	Reaction(context.Context, *room.ReactionParams) (room.ReactionResponse, error)
}

type Config struct {
	DefaultRoomId string
}

type controller struct {
	roomService   iRoomService
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	logger        *slog.Logger
	wsmux         *wsrouter.WSRouter
	defaultRoomId string
}

func NewController(roomService iRoomService, logger *slog.Logger, cfg *Config) *controller {
	c := &controller{
		roomService: roomService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate:      validator.New(),
		logger:        logger,
		defaultRoomId: cfg.DefaultRoomId,
	}
	c.wsmux = c.getWSRouter()

	return c
}
