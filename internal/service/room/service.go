package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/watchroom/server/internal/repository/room"
	"github.com/watchroom/server/pkg/wsconn"
)

var (
	ErrMembersLimitReached = errors.New("members limit reached")
	ErrQueueLimitReached   = errors.New("queue limit reached")
	ErrNotEnoughOptions    = errors.New("poll needs at least 2 options")
	ErrOptionOutOfRange    = errors.New("option index out of range")
	ErrPollNotFound        = errors.New("poll not found")
	ErrAlreadyVoted        = errors.New("already voted in this poll")
)

type iRoomRepo interface {
	// member
	SetMember(context.Context, *room.SetMemberParams) error
	RemoveMember(context.Context, *room.RemoveMemberParams) error
	GetMemberUsername(ctx context.Context, roomId, connId string) (string, error)
	GetMemberNames(ctx context.Context, roomId string) ([]string, error)
	GetMembersCount(ctx context.Context, roomId string) (int, error)
	GetMemberIds(ctx context.Context, roomId string) ([]string, error)
	// queue
	AddVideo(context.Context, *room.AddVideoParams) error
	RemoveVideoAt(context.Context, *room.RemoveVideoParams) error
	PopFirstVideo(ctx context.Context, roomId string) (room.Video, error)
	GetVideos(ctx context.Context, roomId string) ([]room.Video, error)
	GetVideosLength(ctx context.Context, roomId string) (int, error)
	// player
	SetPlayer(context.Context, *room.SetPlayerParams) error
	GetPlayer(ctx context.Context, roomId string) (room.Player, error)
	// skip votes
	AddSkipVote(context.Context, *room.AddSkipVoteParams) error
	RemoveSkipVote(context.Context, *room.RemoveSkipVoteParams) error
	GetSkipVotesCount(ctx context.Context, roomId string) (int, error)
	ClearSkipVotes(ctx context.Context, roomId string) error
	// polls
	SetPoll(context.Context, *room.SetPollParams) error
	GetPoll(context.Context, *room.GetPollParams) (room.Poll, error)
	GetPollIds(ctx context.Context, roomId string) ([]string, error)
	AddPollVote(context.Context, *room.AddPollVoteParams) error
	RemovePollVoter(context.Context, *room.RemovePollVoterParams) error
}

// RoomRepo names the storage contract so the app can pick a backend at
// startup.
type RoomRepo = iRoomRepo

type iConnRepo interface {
	Add(conn *wsconn.Conn, connId string) error
	RemoveByConnId(connId string) error
	GetConn(connId string) (*wsconn.Conn, error)
	GetConnId(conn *wsconn.Conn) (string, error)
}

type Config struct {
	MembersLimit int
	QueueLimit   int
}

type service struct {
	roomRepo     iRoomRepo
	connRepo     iConnRepo
	logger       *slog.Logger
	membersLimit int
	queueLimit   int

	roomLocksMu sync.Mutex
	roomLocks   map[string]*sync.Mutex
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, logger *slog.Logger, cfg *Config) *service {
	return &service{
		roomRepo:     roomRepo,
		connRepo:     connRepo,
		logger:       logger,
		membersLimit: cfg.MembersLimit,
		queueLimit:   cfg.QueueLimit,
		roomLocks:    make(map[string]*sync.Mutex),
	}
}

// lockRoom serializes state mutations per room. Every inbound event is
// handled to completion before the next one for the same room is applied,
// so cross-call read-modify-write sequences stay consistent.
func (s *service) lockRoom(roomId string) func() {
	s.roomLocksMu.Lock()
	lock, ok := s.roomLocks[roomId]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomId] = lock
	}
	s.roomLocksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}
