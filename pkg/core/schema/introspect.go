// Package schema reads table and column metadata from a live database.
//
// It only issues read-only metadata queries. Each dialect provides an
// Introspector; Inspector wraps one with the lookups the generators need.
package schema

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/restgen/restgen/pkg/errors"
)

// ColumnInfo represents metadata about a database column.
type ColumnInfo struct {
	Name         string
	Type         string // The SQL type as returned by the database
	Nullable     bool
	IsPrimaryKey bool
	Default      string
	AutoInc      bool
}

// Introspector defines the interface for database introspection.
// Each dialect must implement this.
type Introspector interface {
	// Name returns the dialect name (e.g., "postgres", "sqlite", "mysql").
	Name() string

	// IntrospectTables returns all user table names in the database.
	IntrospectTables(ctx context.Context, db *sql.DB) ([]string, error)

	// IntrospectColumns returns column metadata for a table.
	IntrospectColumns(ctx context.Context, db *sql.DB, tableName string) ([]*ColumnInfo, error)
}

// Inspector answers schema questions for the generators.
type Inspector struct {
	db           *sql.DB
	introspector Introspector
	logger       *zap.Logger
}

// NewInspector creates an Inspector over db.
func NewInspector(db *sql.DB, introspector Introspector, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{
		db:           db,
		introspector: introspector,
		logger:       logger.Named("schema"),
	}
}

// ListTableNames returns every table visible in the schema, in the order the
// database reports them.
func (i *Inspector) ListTableNames(ctx context.Context) ([]string, error) {
	tables, err := i.introspector.IntrospectTables(ctx, i.db)
	if err != nil {
		return nil, errors.NewConnectionError(i.introspector.Name(), errors.Wrap(err, "listing tables"))
	}
	i.logger.Debug("listed tables", zap.Int("count", len(tables)))
	return tables, nil
}

// TablesExist reports whether every named table is present.
func (i *Inspector) TablesExist(ctx context.Context, names ...string) (bool, error) {
	tables, err := i.ListTableNames(ctx)
	if err != nil {
		return false, err
	}

	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}
	for _, name := range names {
		if !present[name] {
			i.logger.Debug("table missing", zap.String("table", name))
			return false, nil
		}
	}
	return true, nil
}

// Columns returns the columns of tableName in ordinal order.
func (i *Inspector) Columns(ctx context.Context, tableName string) ([]*ColumnInfo, error) {
	columns, err := i.introspector.IntrospectColumns(ctx, i.db, tableName)
	if err != nil {
		return nil, errors.NewConnectionError(i.introspector.Name(), errors.Wrapf(err, "reading columns of %s", tableName))
	}
	i.logger.Debug("read columns", zap.String("table", tableName), zap.Int("count", len(columns)))
	return columns, nil
}
