// Package postgres provides PostgreSQL dialect implementation.
package postgres

import (
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Dialect implements the PostgreSQL dialect.
type Dialect struct {
	schemaName string
}

// New creates a new PostgreSQL dialect reading the "public" schema.
func New() *Dialect {
	return &Dialect{schemaName: "public"}
}

// WithSchema returns a dialect reading tables from the named schema.
func (d *Dialect) WithSchema(name string) *Dialect {
	return &Dialect{schemaName: name}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "postgres"
}

// DriverName returns the Go sql driver name.
func (d *Dialect) DriverName() string {
	return "pgx"
}
