package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
	"github.com/cartera-app/cartera-gateway/internal/testutil"
)

func signTestToken(t *testing.T, username string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLogin(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.Token = signTestToken(t, "alice")
	sessions := testutil.NewMockSessionStore()
	h := NewAuthHandler(service.NewAuthService(users, sessions))

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"pw"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "alice", res.Username)
	assert.NotEmpty(t, res.ExpiresAt)

	id, err := uuid.Parse(res.SessionID)
	require.NoError(t, err)
	assert.Contains(t, sessions.Sessions, id)
}

func TestLoginMissingCredentials(t *testing.T) {
	h := NewAuthHandler(service.NewAuthService(
		testutil.NewMockUserGateway(), testutil.NewMockSessionStore()))

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"username":"alice"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginUpstreamRejection(t *testing.T) {
	users := testutil.NewMockUserGateway()
	users.LoginErr = domain.ErrUnauthorized
	h := NewAuthHandler(service.NewAuthService(users, testutil.NewMockSessionStore()))

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"wrong"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	sessions := testutil.NewMockSessionStore()
	sess := &domain.Session{ID: uuid.New(), Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	sessions.Sessions[sess.ID] = sess

	h := NewAuthHandler(service.NewAuthService(testutil.NewMockUserGateway(), sessions))

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/logout", "")
	ctx := context.WithValue(c.Request().Context(), middleware.SessionKey, sess)
	c.SetRequest(c.Request().WithContext(ctx))

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, sessions.Sessions, sess.ID)
}

func TestLogoutWithoutSession(t *testing.T) {
	h := NewAuthHandler(service.NewAuthService(
		testutil.NewMockUserGateway(), testutil.NewMockSessionStore()))

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister(t *testing.T) {
	users := testutil.NewMockUserGateway()
	h := NewAuthHandler(service.NewAuthService(users, testutil.NewMockSessionStore()))

	c, rec := newTestContext(http.MethodPost, "/api/v1/users",
		`{"username":"alice","email":"a@b.c","password":"pw"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var res UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "alice", res.Username)
}

func TestUpdatePreferences(t *testing.T) {
	sessions := testutil.NewMockSessionStore()
	sess := &domain.Session{ID: uuid.New(), Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}
	sessions.Sessions[sess.ID] = sess

	h := NewAuthHandler(service.NewAuthService(testutil.NewMockUserGateway(), sessions))

	c, rec := newTestContext(http.MethodPut, "/api/v1/preferences", `{"menuCollapsed":true}`)
	ctx := context.WithValue(c.Request().Context(), middleware.SessionKey, sess)
	c.SetRequest(c.Request().WithContext(ctx))

	require.NoError(t, h.UpdatePreferences(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sessions.Sessions[sess.ID].MenuCollapsed)
}
