package connection

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(context.Background(), "sqlite3", ":memory:", DefaultPoolConfig())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 2, db.Stats().MaxOpenConnections)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "no-such-driver", "", DefaultPoolConfig())
	assert.Error(t, err)
}

func TestPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(assert.AnError)

	err = Ping(context.Background(), db, DefaultPoolConfig().PingTimeout)
	assert.ErrorIs(t, err, assert.AnError)
}
