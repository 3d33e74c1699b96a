// Package store persists users, stocks, prices and news in DuckDB.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// MemoryPath opens a database that lives only as long as the Store.
const MemoryPath = ":memory:"

// DefaultListLimit is used when a list call passes a non-positive limit.
const DefaultListLimit = 100

var schema = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		email VARCHAR NOT NULL UNIQUE,
		username VARCHAR NOT NULL UNIQUE,
		hashed_password VARCHAR NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
		user_id BIGINT PRIMARY KEY,
		theme VARCHAR NOT NULL,
		default_timeframe VARCHAR NOT NULL,
		favorite_stocks VARCHAR NOT NULL,
		notification_settings VARCHAR NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS stocks_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS stocks (
		id BIGINT PRIMARY KEY DEFAULT nextval('stocks_id_seq'),
		symbol VARCHAR NOT NULL UNIQUE,
		name VARCHAR NOT NULL,
		market_cap DOUBLE,
		sector VARCHAR,
		industry VARCHAR,
		pe_ratio DOUBLE,
		beta DOUBLE,
		dividend_yield DOUBLE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS stock_prices_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS stock_prices (
		id BIGINT PRIMARY KEY DEFAULT nextval('stock_prices_id_seq'),
		stock_id BIGINT NOT NULL,
		time TIMESTAMP NOT NULL,
		open DOUBLE NOT NULL,
		high DOUBLE NOT NULL,
		low DOUBLE NOT NULL,
		close DOUBLE NOT NULL,
		volume BIGINT NOT NULL,
		indicators VARCHAR,
		UNIQUE (stock_id, time)
	)`,
	`CREATE SEQUENCE IF NOT EXISTS news_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS news (
		id BIGINT PRIMARY KEY DEFAULT nextval('news_id_seq'),
		title VARCHAR NOT NULL,
		content VARCHAR,
		source VARCHAR,
		url VARCHAR,
		published_at TIMESTAMP,
		sentiment_score DOUBLE,
		stock_id BIGINT,
		related_stocks VARCHAR
	)`,
}

// Store is the DuckDB backed repository.
type Store struct {
	db     *sql.DB
	sq     squirrel.StatementBuilderType
	logger *logger.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNop()
	}

	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "database path is required")
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		log.Error("Failed to open database", zap.String("path", path), zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeStoreFailure, "failed to open database", err)
	}

	// Test connection to ensure database is properly initialized
	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreFailure, "failed to connect to database", err)
	}

	s := &Store{
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()

		return nil, err
	}

	log.Debug("Store opened", zap.String("path", path))

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(errors.ErrCodeStoreFailure, "failed to apply schema", err)
		}
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailure, "database unavailable", err)
	}

	return nil
}

// queryError maps a database error to a coded error.
func queryError(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errors.Newf(errors.ErrCodeDataNotFound, format, args...)
	case isConstraintError(err):
		return errors.Wrapf(errors.ErrCodeAlreadyExists, err, format, args...)
	default:
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, format, args...)
	}
}

func isConstraintError(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "Constraint Error") || strings.Contains(msg, "Duplicate key")
}

func pagination(skip, limit int) (uint64, uint64) {
	if skip < 0 {
		skip = 0
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}

	return uint64(skip), uint64(limit)
}

func nullFloat(v optional.Option[float64]) sql.NullFloat64 {
	if v.IsNone() {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: v.Unwrap(), Valid: true}
}

func optionalFloat(v sql.NullFloat64) optional.Option[float64] {
	if !v.Valid {
		return optional.None[float64]()
	}

	return optional.Some(v.Float64)
}

func nullInt(v optional.Option[int64]) sql.NullInt64 {
	if v.IsNone() {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: v.Unwrap(), Valid: true}
}

func optionalInt(v sql.NullInt64) optional.Option[int64] {
	if !v.Valid {
		return optional.None[int64]()
	}

	return optional.Some(v.Int64)
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreFailure, "failed to encode json column", err)
	}

	return string(data), nil
}

func decodeJSON(raw sql.NullString, dst any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(raw.String), dst); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailure, "failed to decode json column", err)
	}

	return nil
}
