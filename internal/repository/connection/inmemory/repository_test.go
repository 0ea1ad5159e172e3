package inmemory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchroom/server/internal/repository/connection"
	"github.com/watchroom/server/pkg/wsconn"
)

func TestRepo(t *testing.T) {
	r := NewRepo()
	conn := &wsconn.Conn{}

	require.NoError(t, r.Add(conn, "c1"))
	assert.ErrorIs(t, r.Add(conn, "c1"), connection.ErrAlreadyExists)

	connId, err := r.GetConnId(conn)
	require.NoError(t, err)
	assert.Equal(t, "c1", connId)

	got, err := r.GetConn("c1")
	require.NoError(t, err)
	assert.Same(t, conn, got)

	require.NoError(t, r.RemoveByConnId("c1"))
	assert.ErrorIs(t, r.RemoveByConnId("c1"), connection.ErrNotFound)

	_, err = r.GetConn("c1")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
