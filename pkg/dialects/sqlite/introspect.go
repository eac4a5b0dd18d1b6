package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/restgen/restgen/pkg/core/schema"
)

// IntrospectTables returns all user table names in the database.
func (d *Dialect) IntrospectTables(ctx context.Context, db *sql.DB) ([]string, error) {
	query := `SELECT name FROM sqlite_master 
		WHERE type='table' 
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// IntrospectColumns returns column metadata for a table.
func (d *Dialect) IntrospectColumns(ctx context.Context, db *sql.DB, tableName string) ([]*schema.ColumnInfo, error) {
	query := `PRAGMA table_info(` + d.Quote(tableName) + `)`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*schema.ColumnInfo
	for rows.Next() {
		var cid int
		var name string
		var colType string
		var notNull int
		var defaultVal sql.NullString
		var pk int

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}

		col := &schema.ColumnInfo{
			Name:         name,
			Type:         colType,
			Nullable:     notNull == 0 && pk == 0,
			IsPrimaryKey: pk > 0,
			Default:      defaultVal.String,
		}

		// SQLite INTEGER PRIMARY KEY is an alias for the rowid
		if pk > 0 && strings.ToUpper(colType) == "INTEGER" {
			col.AutoInc = true
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}
