// Package mysql provides MySQL dialect implementation.
package mysql

import (
	_ "github.com/go-sql-driver/mysql"
)

// Dialect implements the MySQL dialect.
type Dialect struct{}

// New creates a new MySQL dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "mysql"
}

// DriverName returns the Go sql driver name.
func (d *Dialect) DriverName() string {
	return "mysql"
}
