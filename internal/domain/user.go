package domain

import "context"

// User mirrors the upstream user resource.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credentials is a login request against upstream auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserUpdate carries a profile change; the old password is required by
// upstream to authorize the update.
type UserUpdate struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword,omitempty"`
}

// UserGateway is the upstream API surface for users and authentication.
type UserGateway interface {
	Get(ctx context.Context, token, username string) (*User, error)
	Login(ctx context.Context, creds Credentials) (accessToken string, err error)
	Register(ctx context.Context, username, email, password string) (*User, error)
	UpdateData(ctx context.Context, token string, update UserUpdate) (*User, error)
}
