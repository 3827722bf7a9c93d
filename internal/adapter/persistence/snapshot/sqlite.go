package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"credito_tributario/internal/usecase/interfaces"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultSQLitePath = "sessions.db"

// SQLiteStorage persists snapshots in a single key/value table:
//
//	state(bucket TEXT PRIMARY KEY, payload BLOB NOT NULL)
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

var _ interfaces.ISnapshotStorage = (*SQLiteStorage)(nil)

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteStorage{db: db, path: path}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state %s: %w", key, err)
	}
	return payload, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, key string, payload []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		key, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error { return s.db.Close() }

// Path returns the configured database path.
func (s *SQLiteStorage) Path() string { return s.path }
