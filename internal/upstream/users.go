package upstream

import (
	"context"
	"net/http"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// UserGateway implements domain.UserGateway against /users.
type UserGateway struct {
	c *Client
}

// NewUserGateway creates a UserGateway on the shared client.
func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{c: c}
}

func (g *UserGateway) Get(ctx context.Context, token, username string) (*domain.User, error) {
	var user domain.User
	if err := g.c.get(ctx, token, "/users/user/"+username, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an upstream access token. No bearer token
// is attached; this is the one unauthenticated call.
func (g *UserGateway) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	if err := g.c.send(ctx, http.MethodPost, "", "/users/auth/login", creds, &res); err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

func (g *UserGateway) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var user domain.User
	if err := g.c.send(ctx, http.MethodPost, "", "/users/user/new-user", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *UserGateway) UpdateData(ctx context.Context, token string, update domain.UserUpdate) (*domain.User, error) {
	var user domain.User
	if err := g.c.send(ctx, http.MethodPut, token, "/users/user/update-user-data", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
