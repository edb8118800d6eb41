package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/asig/closed-loop/internal/logger"
)

const sqliteDBFile = "closedloop.db"

const createRecordSetsSQLite = `
	CREATE TABLE IF NOT EXISTS record_sets (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// SQLiteStore keeps every named record set as one JSON-array text payload
// in a single-table SQLite database. The contract is identical to the file
// backend; only the durable medium differs.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteStore opens (creating when missing) the SQLite database inside
// dir and ensures the record_sets table exists.
func NewSQLiteStore(ctx context.Context, dir string, log *logger.Logger) (*SQLiteStore, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := filepath.Join(dir, sqliteDBFile)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// SQLite allows a single writer only.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createRecordSetsSQLite); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return &SQLiteStore{db: conn, logger: log}, nil
}

// Load fills dest with the records stored under key. A missing row or a
// malformed payload yields an empty record set.
func (s *SQLiteStore) Load(ctx context.Context, key string, dest any) error {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM record_sets WHERE key = ?", key).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("record set malformed, treating as empty")
		resetDest(dest)
	}

	return nil
}

// Save replaces the record set stored under key with value.
func (s *SQLiteStore) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecords, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO record_sets (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, string(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
