package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstreamFailure = errors.New("could not retrieve data from upstream")

	ErrNameRequired     = errors.New("name is required")
	ErrMoneyRequired    = errors.New("a positive amount is required")
	ErrDateRequired     = errors.New("date is required")
	ErrInvalidType      = errors.New("record type must be EXPENSE or INCOME")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrInvalidLimit     = errors.New("expenses limit must not be negative")
	ErrInvalidUnits     = errors.New("units must be at least 1")
	ErrInvalidPrice     = errors.New("price per unit must not be negative")

	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")

	ErrBudgetRequired         = errors.New("a budget must be selected")
	ErrSelfRequest            = errors.New("cannot send a share request to yourself")
	ErrRequestAlreadyAccepted = errors.New("an accepted request already exists for this budget and user")
	ErrRequestAlreadyPending  = errors.New("a pending request already exists for this budget and user")
	ErrRequestedUserNotFound  = errors.New("requested user does not exist")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid access token")
)
