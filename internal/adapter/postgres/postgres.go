// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"wellness/internal/domain"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and bootstraps the schema.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, date_of_birth DATE, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		// Column names on weight_history are fixed for compatibility with
		// previously stored data.
		`CREATE TABLE IF NOT EXISTS weight_history ("userId" BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, "date" DATE NOT NULL, weight DOUBLE PRECISION NOT NULL, height DOUBLE PRECISION NOT NULL, age INT NOT NULL, bmi DOUBLE PRECISION NOT NULL, PRIMARY KEY ("userId", "date"));`,
		"CREATE TABLE IF NOT EXISTS meals (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, name TEXT NOT NULL, category TEXT NOT NULL CHECK(category IN ('breakfast','lunch','dinner','snack')), day DATE NOT NULL, calories INT NOT NULL DEFAULT 0);",
		"CREATE INDEX IF NOT EXISTS idx_meals_user_day ON meals(user_id, day);",
		"CREATE TABLE IF NOT EXISTS grocery_items (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, name TEXT NOT NULL, quantity INT NOT NULL DEFAULT 1, purchased BOOLEAN NOT NULL DEFAULT FALSE);",
		"CREATE TABLE IF NOT EXISTS birthdays (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, person TEXT NOT NULL, born DATE NOT NULL);",
		"CREATE TABLE IF NOT EXISTS appointments (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, title TEXT NOT NULL, location TEXT NOT NULL DEFAULT '', starts_at TIMESTAMPTZ NOT NULL, notes TEXT NOT NULL DEFAULT '');",
		"CREATE INDEX IF NOT EXISTS idx_appointments_user_starts_at ON appointments(user_id, starts_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// classify maps Postgres integrity violations (class 23) onto
// domain.ErrConstraint so callers can report them as business failures
// rather than opaque store errors.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s", domain.ErrConstraint, pqErr.Message)
	}
	return err
}
