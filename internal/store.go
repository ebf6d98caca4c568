package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store persists accepted messages so a group's history can be replayed
type Store struct {
	db   *sql.DB
	path string
}

// GroupSummary is the per-group message count
type GroupSummary struct {
	GroupID      int64
	MessageCount int
	LastAt       time.Time
}

// NewStore creates a new Store on an open database
func NewStore(db *sql.DB, path string) *Store {
	return &Store{db: db, path: path}
}

// OpenStore opens the database at path and wraps it in a Store
func OpenStore(path string) (*Store, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewStore(db, path), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts messages in one transaction. Messages whose id is already
// stored are skipped.
func (s *Store) Save(ctx context.Context, messages ...*Message) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &StoreError{Path: s.path, Op: "save", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO messages
		(id, group_id, sender_id, content, created_at, source) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &StoreError{Path: s.path, Op: "save", Err: err}
	}
	defer stmt.Close()

	saved := 0
	for _, m := range messages {
		res, err := stmt.ExecContext(ctx, m.ID, m.GroupID, m.SenderID, m.Content, m.CreatedAt.UnixMilli(), m.Source)
		if err != nil {
			return 0, &StoreError{Path: s.path, Op: "save", Err: fmt.Errorf("message %s: %w", m.ID, err)}
		}
		if n, _ := res.RowsAffected(); n > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &StoreError{Path: s.path, Op: "save", Err: err}
	}
	LogDebug("Saved %d of %d message(s)", saved, len(messages))
	return saved, nil
}

// ListByGroup returns a group's most recent messages, oldest first. Stored
// messages are reported with the history source. A limit <= 0 returns all.
func (s *Store) ListByGroup(ctx context.Context, groupID int64, limit int) ([]*Message, error) {
	query := `SELECT id, group_id, sender_id, content, created_at FROM (
		SELECT id, group_id, sender_id, content, created_at FROM messages
		WHERE group_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
	) ORDER BY created_at ASC, id ASC`
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, query, groupID, limit)
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			m  Message
			ms int64
		)
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Content, &ms); err != nil {
			return nil, &StoreError{Path: s.path, Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
		}
		m.CreatedAt = time.UnixMilli(ms)
		m.Source = SourceHistory
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}

	return messages, nil
}

// Count returns the number of stored messages in a group
func (s *Store) Count(ctx context.Context, groupID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages WHERE group_id = ?", groupID).Scan(&n)
	if err != nil {
		return 0, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	return n, nil
}

// Groups summarizes every group with stored messages, most recent first
func (s *Store) Groups(ctx context.Context) ([]GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT group_id, COUNT(*), MAX(created_at)
		FROM messages GROUP BY group_id ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	defer rows.Close()

	var groups []GroupSummary
	for rows.Next() {
		var (
			g  GroupSummary
			ms int64
		)
		if err := rows.Scan(&g.GroupID, &g.MessageCount, &ms); err != nil {
			return nil, &StoreError{Path: s.path, Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
		}
		g.LastAt = time.UnixMilli(ms)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	return groups, nil
}
