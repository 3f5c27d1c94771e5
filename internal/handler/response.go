package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartera-app/cartera-gateway/internal/domain"
	"github.com/cartera-app/cartera-gateway/internal/format"
	"github.com/cartera-app/cartera-gateway/internal/upstream"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindError carries a request-binding failure up to the handler. The helper
// that detects the failure never writes the response itself; the handler
// turns a non-nil bindError into exactly one ProblemDetails reply.
type bindError struct {
	detail string
	fields []ValidationError
}

func (e *bindError) Error() string { return e.detail }

// Error types
const (
	ErrorTypeValidation   = "https://cartera.app/errors/validation"
	ErrorTypeNotFound     = "https://cartera.app/errors/not-found"
	ErrorTypeUnauthorized = "https://cartera.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://cartera.app/errors/forbidden"
	ErrorTypeUpstream     = "https://cartera.app/errors/upstream"
	ErrorTypeInternal     = "https://cartera.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUpstreamError creates a bad gateway error response for failed upstream
// calls
func NewUpstreamError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadGateway, ProblemDetails{
		Type:     ErrorTypeUpstream,
		Title:    "Upstream Error",
		Status:   http.StatusBadGateway,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondServiceError maps a service error onto the proper problem response.
// Client-side validation failures come back as 400 with field details,
// upstream rejections keep their upstream status where it is meaningful,
// and transport failures surface as 502.
func respondServiceError(c echo.Context, err error, upstreamDetail string) error {
	var windowErr *domain.BudgetWindowError
	if errors.As(err, &windowErr) {
		details := make([]ValidationError, len(windowErr.Budgets))
		for i, b := range windowErr.Budgets {
			details[i] = ValidationError{Field: "budgets", Message: b.Name + " (" + b.Window() + ")"}
		}
		return NewValidationError(c,
			"The record's date "+format.Date(windowErr.Date)+" is outside the date window of the selected budgets", details)
	}

	switch {
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrMoneyRequired),
		errors.Is(err, domain.ErrDateRequired),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidUnits),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrUsernameRequired),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrPasswordRequired),
		errors.Is(err, domain.ErrBudgetRequired),
		errors.Is(err, domain.ErrSelfRequest),
		errors.Is(err, domain.ErrRequestAlreadyAccepted),
		errors.Is(err, domain.ErrRequestAlreadyPending),
		errors.Is(err, domain.ErrRequestedUserNotFound),
		errors.Is(err, domain.ErrInvalidToken):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrSessionExpired):
		return NewUnauthorizedError(c, err.Error())
	case errors.Is(err, domain.ErrNotFound), upstream.IsStatus(err, http.StatusNotFound):
		return NewNotFoundError(c, upstreamDetail)
	case upstream.IsStatus(err, http.StatusUnauthorized), upstream.IsStatus(err, http.StatusForbidden):
		return NewUnauthorizedError(c, upstreamDetail)
	default:
		return NewUpstreamError(c, upstreamDetail)
	}
}
