// Package dialects provides database dialect interfaces and implementations.
package dialects

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/restgen/restgen/pkg/core/schema"
)

// Dialect defines the interface that all database dialects must implement.
type Dialect interface {
	schema.Introspector

	// DriverName returns the Go sql driver name.
	DriverName() string
}

// Connection represents a database connection with dialect awareness.
type Connection struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewConnection creates a new connection with the specified dialect.
func NewConnection(db *sql.DB, dialect Dialect) *Connection {
	return &Connection{
		DB:      db,
		Dialect: dialect,
	}
}

// Inspector returns a schema inspector bound to this connection.
func (c *Connection) Inspector(logger *zap.Logger) *schema.Inspector {
	return schema.NewInspector(c.DB, c.Dialect, logger)
}

// Close closes the database connection.
func (c *Connection) Close() error {
	return c.DB.Close()
}
