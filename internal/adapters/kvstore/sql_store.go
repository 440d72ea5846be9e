package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-plan-service/internal/platform/obs"
)

// SQLStore is a Postgres-backed document store.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// Initialize the Postgres documents schema.
func InitSQLSchema(db *sql.DB) error {
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
func (s *SQLStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "documents.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("document store: db is nil")
	}

	if key == "" {
		return "", false, errors.New("get document: key must not be empty")
	}

	var body string
	err = s.DB.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = $1;`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get document key=%q: %w", key, err)
	}

	return body, true, nil
}

// Store value under key, replacing any previous document.
func (s *SQLStore) Set(ctx context.Context, key, value string) (err error) {
	defer obs.Time(ctx, "documents.Set")(&err)

	if s.DB == nil {
		return errors.New("document store: db is nil")
	}

	if key == "" {
		return errors.New("set document: key must not be empty")
	}

	q := `
	INSERT INTO documents (key, body)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET body = EXCLUDED.body;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("set document key=%q: %w", key, err)
	}

	return nil
}
