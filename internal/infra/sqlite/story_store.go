// Package sqlite stores visitor stories in a local SQLite file for single-node
// deployments without Redis.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mindcheck-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS stories (
	visitor_id TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// StoryStore implements app.StoryStore on SQLite.
type StoryStore struct {
	db *sql.DB
}

// Open creates the database file if needed and applies the schema.
func Open(ctx context.Context, path string) (*StoryStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &StoryStore{db: db}, nil
}

func (s *StoryStore) SaveStory(ctx context.Context, story domain.Story) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO stories (visitor_id, text, updated_at) VALUES (?, ?, ?)
ON CONFLICT(visitor_id) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at`,
		story.VisitorID, story.Text, story.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save story: %w", err)
	}
	return nil
}

func (s *StoryStore) LoadStory(ctx context.Context, visitorID string) (domain.Story, error) {
	var (
		text    string
		updated int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT text, updated_at FROM stories WHERE visitor_id = ?`, visitorID).Scan(&text, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Story{}, domain.ErrStoryNotFound
	}
	if err != nil {
		return domain.Story{}, fmt.Errorf("load story: %w", err)
	}
	return domain.Story{VisitorID: visitorID, Text: text, UpdatedAt: time.Unix(0, updated).UTC()}, nil
}

// Close releases the database handle.
func (s *StoryStore) Close() error {
	return s.db.Close()
}
