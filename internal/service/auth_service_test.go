package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/testutil"
)

func signTestToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": username}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestAuthServiceLogin(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = signTestToken(t, "alice", time.Now().Add(time.Hour))
	sessions := testutil.NewMockSessionStore()

	svc := NewAuthService(users, sessions)
	sess, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if sess.Username != "alice" {
		t.Errorf("username = %q, want %q", sess.Username, "alice")
	}
	if sess.Token != users.Token {
		t.Error("session does not hold the upstream token")
	}
	if sess.ExpiresAt.IsZero() {
		t.Error("expiry not taken from the token")
	}
	if _, ok := sessions.Sessions[sess.ID]; !ok {
		t.Error("session not persisted")
	}
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc := NewAuthService(testutil.NewMockUserGateway(), testutil.NewMockSessionStore())

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrUsernameRequired) {
		t.Errorf("err = %v, want ErrUsernameRequired", err)
	}
	if _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrPasswordRequired) {
		t.Errorf("err = %v, want ErrPasswordRequired", err)
	}
}

func TestAuthServiceLoginExpiredToken(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = signTestToken(t, "alice", time.Now().Add(-time.Hour))
	sessions := testutil.NewMockSessionStore()

	svc := NewAuthService(users, sessions)
	if _, err := svc.Login(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
	if len(sessions.Sessions) != 0 {
		t.Error("expired login persisted a session")
	}
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.LoginErr = domain.ErrUnauthorized

	svc := NewAuthService(users, testutil.NewMockSessionStore())
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestAuthServiceLoginGarbageToken(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = "not-a-jwt"

	svc := NewAuthService(users, testutil.NewMockSessionStore())
	if _, err := svc.Login(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestAuthServiceLogout(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = signTestToken(t, "alice", time.Now().Add(time.Hour))
	sessions := testutil.NewMockSessionStore()

	svc := NewAuthService(users, sessions)
	sess, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := sessions.Sessions[sess.ID]; ok {
		t.Error("session still present after logout")
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := NewAuthService(testutil.NewMockUserGateway(), testutil.NewMockSessionStore())

	tests := []struct {
		name                      string
		username, email, password string
		wantErr                   error
	}{
		{"missing username", "", "a@b.c", "pw", domain.ErrUsernameRequired},
		{"missing email", "alice", "", "pw", domain.ErrEmailRequired},
		{"missing password", "alice", "a@b.c", "", domain.ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.username, tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	user, err := svc.Register(context.Background(), "alice", "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user = %+v", user)
	}
}

func TestAuthServiceUpdateUserValidation(t *testing.T) {
	svc := NewAuthService(testutil.NewMockUserGateway(), testutil.NewMockSessionStore())

	tests := []struct {
		name    string
		update  domain.UserUpdate
		wantErr error
	}{
		{"missing username", domain.UserUpdate{Email: "a@b.c", OldPassword: "pw"}, domain.ErrUsernameRequired},
		{"missing email", domain.UserUpdate{Username: "alice", OldPassword: "pw"}, domain.ErrEmailRequired},
		{"missing old password", domain.UserUpdate{Username: "alice", Email: "a@b.c"}, domain.ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateUser(context.Background(), "tok", tt.update); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthServiceSetMenuCollapsed(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = signTestToken(t, "alice", time.Now().Add(time.Hour))
	sessions := testutil.NewMockSessionStore()

	svc := NewAuthService(users, sessions)
	sess, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.SetMenuCollapsed(context.Background(), sess.ID, true); err != nil {
		t.Fatalf("SetMenuCollapsed: %v", err)
	}
	if !sessions.Sessions[sess.ID].MenuCollapsed {
		t.Error("preference not stored")
	}
}
