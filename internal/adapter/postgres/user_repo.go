package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wellness/internal/domain"
)

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, date_of_birth, created_at FROM users WHERE username = $1",
		username,
	))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, date_of_birth, created_at FROM users WHERE id = $1",
		id,
	))
}

func (d *DB) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var dob sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &dob, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		u.DateOfBirth = dob.Time
	}
	return &u, nil
}

// Create creates a new user. A zero dateOfBirth is stored as NULL
// (SSO-provisioned accounts complete their profile later).
func (d *DB) Create(ctx context.Context, username, passwordHash string, dateOfBirth time.Time) (*domain.User, error) {
	var dob sql.NullTime
	if !dateOfBirth.IsZero() {
		dob = sql.NullTime{Time: dateOfBirth, Valid: true}
	}

	var u domain.User
	var stored sql.NullTime
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, date_of_birth, created_at) VALUES ($1, $2, $3, $4) RETURNING id, username, password_hash, date_of_birth, created_at",
		username, passwordHash, dob, time.Now(),
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &stored, &u.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	if stored.Valid {
		u.DateOfBirth = stored.Time
	}
	return &u, nil
}

// DateOfBirth returns the stored date of birth, or domain.ErrNotFound when
// the user does not exist or has none on record.
func (d *DB) DateOfBirth(ctx context.Context, userID int64) (time.Time, error) {
	var dob sql.NullTime
	err := d.sql.QueryRowContext(ctx,
		"SELECT date_of_birth FROM users WHERE id = $1", userID,
	).Scan(&dob)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if !dob.Valid {
		return time.Time{}, domain.ErrNotFound
	}
	return dob.Time, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		token, userID, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
