package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	group_id   INTEGER NOT NULL,
	sender_id  INTEGER NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	source     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_group_created ON messages (group_id, created_at);
`

// OpenDatabase opens (creating if needed) the SQLite history database and
// applies the schema
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StoreError{Path: path, Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}
	if path == ":memory:" {
		// each pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "migrate", Err: err}
	}

	return db, nil
}

// Migrate creates the messages table and its index
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
