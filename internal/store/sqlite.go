// ABOUTME: SQLite implementation of the blob store and request counter using modernc.org/sqlite.
// ABOUTME: Schema is created automatically; WAL mode is enabled for concurrent readers.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements BlobStore and RequestCounter on a single
// SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the database at path. Parent
// directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS csv_blobs (
		key        TEXT PRIMARY KEY,
		data       BLOB NOT NULL,
		station    TEXT NOT NULL DEFAULT '',
		parameter  TEXT NOT NULL DEFAULT '',
		period     TEXT NOT NULL DEFAULT '',
		size       INTEGER NOT NULL,
		stored_at  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS request_counts (
		day    TEXT PRIMARY KEY,
		count  INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetCSV returns the blob stored under key when it is younger than
// maxAge. Stale or missing entries report a miss, not an error.
func (s *SQLiteStore) GetCSV(ctx context.Context, key string, maxAge time.Duration) (string, bool, error) {
	var data []byte
	var storedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT data, stored_at FROM csv_blobs WHERE key = ?", key,
	).Scan(&data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading blob %q: %w", key, err)
	}

	age := time.Since(time.Unix(storedAt, 0))
	if age > maxAge {
		s.logger.Debug("blob cache expired", "key", key, "age", age)
		return "", false, nil
	}

	s.logger.Debug("blob cache hit", "key", key, "age", age)
	return string(data), true, nil
}

// PutCSV stores or replaces the blob under key.
func (s *SQLiteStore) PutCSV(ctx context.Context, key, data string, meta BlobMeta) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO csv_blobs (key, data, station, parameter, period, size, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			station = excluded.station,
			parameter = excluded.parameter,
			period = excluded.period,
			size = excluded.size,
			stored_at = excluded.stored_at`,
		key, []byte(data), meta.Station, meta.Parameter, meta.Period, len(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing blob %q: %w", key, err)
	}

	s.logger.Debug("cached CSV blob", "key", key, "size", len(data))
	return nil
}

// CheckAndIncrement bumps the counter for day and returns the new count.
func (s *SQLiteStore) CheckAndIncrement(ctx context.Context, day string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO request_counts (day, count) VALUES (?, 1)
		ON CONFLICT(day) DO UPDATE SET count = count + 1
		RETURNING count`, day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("incrementing request counter for %q: %w", day, err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
