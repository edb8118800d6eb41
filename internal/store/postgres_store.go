package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/migrations"
)

// PostgresStore keeps every named record set as one JSON-array text payload
// in the record_sets table, managed by the goose migrations.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewPostgresStore connects to PostgreSQL, verifies the connection and
// applies pending migrations.
func NewPostgresStore(ctx context.Context, cfg config.DB, log *logger.Logger) (*PostgresStore, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.Migrate(conn); err != nil {
		return nil, err
	}

	log.Info().Str("func", "NewPostgresStore").Msg("connected to database successfully")

	return &PostgresStore{
		db:      conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  log,
	}, nil
}

// Load fills dest with the records stored under key. A missing row, a
// missing table, or a malformed payload yields an empty record set.
func (s *PostgresStore) Load(ctx context.Context, key string, dest any) error {
	query, args, err := s.builder.
		Select("payload").
		From("record_sets").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case postgresError(err) == pgerrcode.UndefinedTable:
		s.logger.Warn().Str("key", key).Msg("record_sets table missing, treating as empty")
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
func (s *PostgresStore) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecords, err)
	}

	query, args, err := s.builder.
		Insert("record_sets").
		Columns("key", "payload").
		Values(key, string(payload)).
		Suffix("ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// postgresError returns the PostgreSQL error code of err, or an empty
// string when err is not a driver error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
