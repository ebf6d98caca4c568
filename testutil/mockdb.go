package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const messagesTableSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	group_id   INTEGER NOT NULL,
	sender_id  INTEGER NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	source     TEXT NOT NULL
)`

// CreateInMemoryDB creates an in-memory SQLite database with the messages table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// a second pooled connection would see a different database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(messagesTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create messages table: %v", err)
	}

	return db
}

// CreateTestDB creates an in-memory database with messages in groups 456 and 789
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	messages := []struct {
		id        string
		group     int64
		sender    int64
		content   string
		createdAt int64
	}{
		{"temp_1701424800000_aaaaaaaaa", 456, 123, "Hello", 1701424800000},
		{"temp_1701424860000_bbbbbbbbb", 456, 124, "Hi there", 1701424860000},
		{"temp_1701424920000_ccccccccc", 456, 123, "Who is watching Frieren?", 1701424920000},
		{"temp_1701424980000_ddddddddd", 789, 125, "How are you?", 1701424980000},
	}
	for _, m := range messages {
		InsertMessage(t, db, m.id, m.group, m.sender, m.content, m.createdAt, "websocket")
	}

	return db
}

// InsertMessage inserts a message row
func InsertMessage(t *testing.T, db *sql.DB, id string, groupID, senderID int64, content string, createdAtMillis int64, source string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO messages (id, group_id, sender_id, content, created_at, source)
		VALUES (?, ?, ?, ?, ?, ?)`, id, groupID, senderID, content, createdAtMillis, source)
	if err != nil {
		t.Fatalf("Failed to insert message %s: %v", id, err)
	}
}
