// Package connection opens database connections for schema introspection.
package connection

import (
	"context"
	"database/sql"
	"time"
)

// PoolConfig configures the connection pool.
type PoolConfig struct {
	MaxOpenConns    int           // Maximum number of open connections
	MaxIdleConns    int           // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	PingTimeout     time.Duration // Time allowed for the initial ping
}

// DefaultPoolConfig returns defaults suited to a short-lived CLI run that
// issues a handful of sequential metadata queries.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// Open opens a pool for driverName and verifies the database is reachable.
func Open(ctx context.Context, driverName, dsn string, config PoolConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := Ping(ctx, db, config.PingTimeout); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Ping verifies the connection is alive within timeout.
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
