package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/middleware"
	"github.com/cartera-app/cartera-gateway/internal/service"
)

// AuthHandler handles session and user HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	SessionID     string `json:"sessionId"`
	Username      string `json:"username"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
	MenuCollapsed bool   `json:"menuCollapsed"`
}

// RegisterRequest represents the user registration body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the profile update body
type UpdateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PreferencesRequest represents the UI preference body
type PreferencesRequest struct {
	MenuCollapsed bool `json:"menuCollapsed"`
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for a gateway session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err, "Could not log in")
	}

	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Logout godoc
// @Summary Log out
// @Description Clear the gateway session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.GetSession(c)
	if sess == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
		return NewInternalError(c, "Could not clear the session")
	}

	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess := middleware.GetSession(c)
	if sess == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Register godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New user"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ProblemDetails
// @Router /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, "Could not register the user")
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 404 {object} ProblemDetails
// @Router /users/{username} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context(), middleware.GetToken(c), c.Param("username"))
	if err != nil {
		return respondServiceError(c, err, "Could not retrieve the user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser godoc
// @Summary Update the current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "Profile changes"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ProblemDetails
// @Router /users/me [put]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), middleware.GetToken(c), domain.UserUpdate{
		Username:    req.Username,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return respondServiceError(c, err, "Could not update the user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetPreferences godoc
// @Summary Get UI preferences
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesRequest
// @Router /preferences [get]
func (h *AuthHandler) GetPreferences(c echo.Context) error {
	sess := middleware.GetSession(c)
	if sess == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	return c.JSON(http.StatusOK, PreferencesRequest{MenuCollapsed: sess.MenuCollapsed})
}

// UpdatePreferences godoc
// @Summary Update UI preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} PreferencesRequest
// @Router /preferences [put]
func (h *AuthHandler) UpdatePreferences(c echo.Context) error {
	sess := middleware.GetSession(c)
	if sess == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.authService.SetMenuCollapsed(c.Request().Context(), sess.ID, req.MenuCollapsed); err != nil {
		return respondServiceError(c, err, "Could not update preferences")
	}

	return c.JSON(http.StatusOK, req)
}

func toSessionResponse(sess *domain.Session) SessionResponse {
	res := SessionResponse{
		SessionID:     sess.ID.String(),
		Username:      sess.Username,
		MenuCollapsed: sess.MenuCollapsed,
	}
	if !sess.ExpiresAt.IsZero() {
		res.ExpiresAt = sess.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return res
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		Email:    user.Email,
	}
}
