package sqlite

import (
	"context"
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(context.Background(), `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			active INTEGER DEFAULT 1
		);
		CREATE TABLE password_resets (
			email TEXT NOT NULL,
			token TEXT NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	return db
}

func TestIntrospectTables(t *testing.T) {
	db := setupTestDB(t)

	tables, err := New().IntrospectTables(context.Background(), db)
	if err != nil {
		t.Fatalf("IntrospectTables() error = %v", err)
	}

	// sqlite_sequence is created by AUTOINCREMENT and must be skipped
	want := []string{"password_resets", "users"}
	if len(tables) != len(want) {
		t.Fatalf("IntrospectTables() = %v, want %v", tables, want)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("tables[%d] = %q, want %q", i, tables[i], want[i])
		}
	}
}

func TestIntrospectColumns(t *testing.T) {
	db := setupTestDB(t)

	columns, err := New().IntrospectColumns(context.Background(), db, "users")
	if err != nil {
		t.Fatalf("IntrospectColumns() error = %v", err)
	}
	if len(columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(columns))
	}

	id := columns[0]
	if id.Name != "id" || !id.IsPrimaryKey || !id.AutoInc || id.Nullable {
		t.Errorf("unexpected id column: %+v", id)
	}

	email := columns[1]
	if email.Nullable {
		t.Error("email should not be nullable")
	}

	name := columns[2]
	if !name.Nullable {
		t.Error("name should be nullable")
	}

	active := columns[3]
	if active.Default != "1" {
		t.Errorf("active default = %q, want %q", active.Default, "1")
	}
}

func TestIntrospectColumnsUnknownTable(t *testing.T) {
	db := setupTestDB(t)

	columns, err := New().IntrospectColumns(context.Background(), db, "missing")
	if err != nil {
		t.Fatalf("IntrospectColumns() error = %v", err)
	}
	if len(columns) != 0 {
		t.Errorf("Expected no columns, got %d", len(columns))
	}
}

func TestQuote(t *testing.T) {
	if got := New().Quote(`we"ird`); got != `"we""ird"` {
		t.Errorf("Quote() = %s", got)
	}
}
