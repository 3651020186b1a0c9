// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound signals that a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConstraint signals that the data store rejected a write as an integrity
// violation rather than failing outright.
var ErrConstraint = errors.New("constraint violation")

// User represents a registered account in the system.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}

// Session represents an active bearer session.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, username, passwordHash string, dateOfBirth time.Time) (*User, error)
	// DateOfBirth returns ErrNotFound when the user does not exist or has no
	// date of birth on record.
	DateOfBirth(ctx context.Context, userID int64) (time.Time, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
