// Package sqlite provides SQLite dialect implementation.
package sqlite

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Dialect implements the SQLite dialect.
type Dialect struct{}

// New creates a new SQLite dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sqlite"
}

// DriverName returns the Go sql driver name.
func (d *Dialect) DriverName() string {
	return "sqlite3"
}

// Quote quotes an identifier.
func (d *Dialect) Quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
