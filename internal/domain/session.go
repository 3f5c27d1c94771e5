package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the gateway-side replacement for the browser's localStorage
// state: the upstream access token and the menu-collapsed UI preference,
// bound to one login. Created on login, deleted on logout, never trusted
// past ExpiresAt.
type Session struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Token         string    `json:"-"`
	ExpiresAt     time.Time `json:"expiresAt"`
	MenuCollapsed bool      `json:"menuCollapsed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Expired reports whether the session's token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionStore persists sessions across gateway restarts.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetMenuCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
