package inmemory

import (
	"sync"

	"github.com/watchroom/server/internal/repository/connection"
	"github.com/watchroom/server/pkg/wsconn"
)

type repo struct {
	connList map[*wsconn.Conn]string
	idList   map[string]*wsconn.Conn
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList: make(map[*wsconn.Conn]string),
		idList:   make(map[string]*wsconn.Conn),
	}
}

func (r *repo) Add(conn *wsconn.Conn, connId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connList[conn] != "" || r.idList[connId] != nil {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = connId
	r.idList[connId] = conn

	return nil
}

func (r *repo) RemoveByConnId(connId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.idList[connId]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, connId)

	return nil
}

func (r *repo) GetConnId(conn *wsconn.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connId, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return connId, nil
}

func (r *repo) GetConn(connId string) (*wsconn.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[connId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}
