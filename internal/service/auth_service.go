package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/session"
)

// AuthService owns the session lifecycle: upstream login creates a session,
// logout tears it down. It also fronts user registration and profile
// updates.
type AuthService struct {
	users    domain.UserGateway
	sessions domain.SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserGateway, sessions domain.SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Login exchanges credentials for an upstream access token, decodes the
// token's identity and expiry, and persists a new session around it.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	token, err := s.users.Login(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	claims, err := session.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	sess := &domain.Session{
		ID:        uuid.New(),
		Username:  claims.Username,
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout deletes the session. The upstream token itself stays valid until
// its expiry; the gateway merely forgets it.
func (s *AuthService) Logout(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

// Register creates a new upstream user.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}
	return s.users.Register(ctx, username, email, password)
}

// GetUser fetches an upstream user profile.
func (s *AuthService) GetUser(ctx context.Context, token, username string) (*domain.User, error) {
	return s.users.Get(ctx, token, username)
}

// UpdateUser updates the user's profile upstream. The old password is
// required; a new password is optional.
func (s *AuthService) UpdateUser(ctx context.Context, token string, update domain.UserUpdate) (*domain.User, error) {
	if update.Username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if update.Email == "" {
		return nil, domain.ErrEmailRequired
	}
	if update.OldPassword == "" {
		return nil, domain.ErrPasswordRequired
	}
	return s.users.UpdateData(ctx, token, update)
}

// SetMenuCollapsed stores the menu UI preference on the session.
func (s *AuthService) SetMenuCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error {
	return s.sessions.SetMenuCollapsed(ctx, id, collapsed)
}
