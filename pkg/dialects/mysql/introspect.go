package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/restgen/restgen/pkg/core/schema"
)

// IntrospectTables returns all user table names in the database.
func (d *Dialect) IntrospectTables(ctx context.Context, db *sql.DB) ([]string, error) {
	query := `SELECT table_name 
		FROM information_schema.tables 
		WHERE table_schema = DATABASE()
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`

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
	query := `SELECT 
		column_name,
		data_type,
		is_nullable,
		column_default,
		column_key,
		extra
	FROM information_schema.columns
	WHERE table_name = ? AND table_schema = DATABASE()
	ORDER BY ordinal_position`

	rows, err := db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*schema.ColumnInfo
	for rows.Next() {
		var name string
		var colType string
		var nullable string
		var defaultVal sql.NullString
		var columnKey string
		var extra string

		if err := rows.Scan(&name, &colType, &nullable, &defaultVal, &columnKey, &extra); err != nil {
			return nil, err
		}

		columns = append(columns, &schema.ColumnInfo{
			Name:         name,
			Type:         colType,
			Nullable:     nullable == "YES",
			IsPrimaryKey: columnKey == "PRI",
			Default:      defaultVal.String,
			AutoInc:      strings.Contains(extra, "auto_increment"),
		})
	}

	return columns, rows.Err()
}
