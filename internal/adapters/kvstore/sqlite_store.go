package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite backed document store. One row per versioned key, the value is
// the raw JSON document.
type SqliteStore struct {
	DB *sql.DB
}

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

// Initialize the SQLite documents schema.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		body TEXT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create documents table: %w", err)
	}

	return nil
}

// Fetch the document stored under key. The second return reports
// whether the key exists.
func (s *SqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.DB == nil {
		return "", false, errors.New("document store: db is nil")
	}

	if key == "" {
		return "", false, errors.New("get document: key must not be empty")
	}

	var body string
	err := s.DB.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?;`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get document key=%q: %w", key, err)
	}

	return body, true, nil
}

// Store value under key, replacing any previous document.
func (s *SqliteStore) Set(ctx context.Context, key, value string) error {
	if s.DB == nil {
		return errors.New("document store: db is nil")
	}

	if key == "" {
		return errors.New("set document: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO documents (key, body)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("set document key=%q: %w", key, err)
	}

	return nil
}
