package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateSQLiteFixture creates a history database file with sample messages
// in groups 456 and 789
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(messagesTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	InsertMessage(t, db, "temp_1701424800000_aaaaaaaaa", 456, 123, "Hello from the fixture", 1701424800000, "websocket")
	InsertMessage(t, db, "temp_1701424860000_bbbbbbbbb", 456, 124, "Second fixture message", 1701424860000, "websocket")
	InsertMessage(t, db, "temp_1701424920000_ccccccccc", 789, 125, "Other group", 1701424920000, "websocket")
}

// SamplePayloadsJSONL is one payload per line: formats A, B and C for group
// 456, a payload for group 999, a payload without content and a broken line
const SamplePayloadsJSONL = `{"message":"Conteúdo da mensagem","sender":{"id":123},"groupId":456,"timestamp":"2023-12-01T10:00:00Z"}
{"content":"Conteúdo da mensagem","sender":123,"groupId":456,"createdAt":"2023-12-01T10:00:00Z"}
{"message":"Conteúdo da mensagem","senderId":123,"group_id":456,"timestamp":1701424800000}
{"message":"teste","sender":123,"groupId":999}
{"sender":123,"groupId":456}
{not json
`

// SamplePayloadsYAML holds formats A and C for group 456 as a YAML sequence
const SamplePayloadsYAML = `- message: Olá do YAML
  sender:
    id: 123
  groupId: 456
  timestamp: "2023-12-01T10:00:00Z"
- message: Formato C
  senderId: 125
  group_id: 456
  timestamp: 1701424800000
`
