package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the resolved session
	SessionKey contextKey = "session"
	// UsernameKey is the context key for the session's username
	UsernameKey contextKey = "username"
	// TokenKey is the context key for the upstream access token
	TokenKey contextKey = "token"
)

// SessionAuth resolves the bearer session id on each request.
type SessionAuth struct {
	sessions domain.SessionStore
}

// NewSessionAuth creates a new SessionAuth middleware.
func NewSessionAuth(sessions domain.SessionStore) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

// Authenticate returns an Echo middleware that resolves the
// "Authorization: Bearer <session id>" header into a stored session,
// rejects expired sessions, and injects the username and upstream token
// into the request context.
func (m *SessionAuth) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			sessionID, err := uuid.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session id")
			}

			sess, err := m.sessions.Get(c.Request().Context(), sessionID)
			if err != nil {
				log.Debug().Err(err).Str("session_id", sessionID.String()).Msg("Session lookup failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "session not found")
			}

			if sess.Expired(time.Now()) {
				// Expired sessions are removed eagerly so the client gets a
				// clean "expired" answer exactly once.
				_ = m.sessions.Delete(c.Request().Context(), sessionID)
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			ctx := context.WithValue(c.Request().Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, UsernameKey, sess.Username)
			ctx = context.WithValue(ctx, TokenKey, sess.Token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetSession extracts the resolved session from the context
func GetSession(c echo.Context) *domain.Session {
	if sess, ok := c.Request().Context().Value(SessionKey).(*domain.Session); ok {
		return sess
	}
	return nil
}

// GetUsername extracts the session's username from the context
func GetUsername(c echo.Context) string {
	if username, ok := c.Request().Context().Value(UsernameKey).(string); ok {
		return username
	}
	return ""
}

// GetToken extracts the upstream access token from the context
func GetToken(c echo.Context) string {
	if token, ok := c.Request().Context().Value(TokenKey).(string); ok {
		return token
	}
	return ""
}
