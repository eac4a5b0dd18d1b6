package postgres

import (
	"context"
	"database/sql"

	"github.com/restgen/restgen/pkg/core/schema"
)

// IntrospectTables returns all user table names in the database.
func (d *Dialect) IntrospectTables(ctx context.Context, db *sql.DB) ([]string, error) {
	query := `SELECT table_name 
		FROM information_schema.tables 
		WHERE table_schema = $1 
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := db.QueryContext(ctx, query, d.schemaName)
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
		c.column_name,
		c.data_type,
		c.is_nullable,
		c.column_default,
		CASE WHEN pk.column_name IS NOT NULL THEN true ELSE false END as is_primary_key,
		CASE WHEN c.column_default LIKE 'nextval%' THEN true ELSE false END as is_auto_inc
	FROM information_schema.columns c
	LEFT JOIN (
		SELECT ku.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage ku 
			ON tc.constraint_name = ku.constraint_name
		WHERE tc.table_name = $1 
		AND tc.table_schema = $2
		AND tc.constraint_type = 'PRIMARY KEY'
	) pk ON c.column_name = pk.column_name
	WHERE c.table_name = $1 AND c.table_schema = $2
	ORDER BY c.ordinal_position`

	rows, err := db.QueryContext(ctx, query, tableName, d.schemaName)
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
		var isPK bool
		var isAutoInc bool

		if err := rows.Scan(&name, &colType, &nullable, &defaultVal, &isPK, &isAutoInc); err != nil {
			return nil, err
		}

		columns = append(columns, &schema.ColumnInfo{
			Name:         name,
			Type:         colType,
			Nullable:     nullable == "YES",
			IsPrimaryKey: isPK,
			Default:      defaultVal.String,
			AutoInc:      isAutoInc,
		})
	}

	return columns, rows.Err()
}
