package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrBlockedSession indicates that the session is blocked.
	ErrBlockedSession = errors.New("blocked session")
	// ErrInvalidUser indicates that the session does not belong to the token holder.
	ErrInvalidUser = errors.New("incorrect session user")
	// ErrMismatchedRefreshToken indicates that the refresh token does not match the session.
	ErrMismatchedRefreshToken = errors.New("mismatched session token")
	// ErrExpiredSession indicates that the session has expired.
	ErrExpiredSession = errors.New("expired session")
)

// Session holds refresh token data for one login.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateSessionParams is the input data for creating a session.
type CreateSessionParams struct {
	ID           uuid.UUID
	Email        string
	RefreshToken string
	UserAgent    string
	ClientIP     string
	IsBlocked    bool
	ExpiresAt    time.Time
}
