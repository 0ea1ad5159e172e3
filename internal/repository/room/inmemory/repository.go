package inmemory

import (
	"sync"

	"github.com/watchroom/server/internal/repository/room"
)

type pollState struct {
	question string
	options  []room.PollOption
	voters   map[string]int
}

type roomState struct {
	memberIds []string
	members   map[string]room.Member
	queue     []room.Video
	player    *room.Player
	skipVotes map[string]struct{}
	pollIds   []string
	polls     map[string]*pollState
}

// repo is the process-wide room registry: exactly one state per room id,
// created lazily on first reference and kept for the process lifetime.
type repo struct {
	rooms map[string]*roomState
	mu    sync.RWMutex
}

func NewRepo() *repo {
	return &repo{rooms: make(map[string]*roomState)}
}

// getRoom must be called with mu held.
func (r *repo) getRoom(roomId string) *roomState {
	state, ok := r.rooms[roomId]
	if !ok {
		state = &roomState{
			members:   make(map[string]room.Member),
			skipVotes: make(map[string]struct{}),
			polls:     make(map[string]*pollState),
		}
		r.rooms[roomId] = state
	}

	return state
}
