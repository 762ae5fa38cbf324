package usecase

import "errors"

var (
	ErrMissingToken       = errors.New("missing authorization token")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrTokenNotFound = errors.New("token does not exist")
	ErrTokenExpired  = errors.New("token has expired")

	ErrEmailInUse          = errors.New("email already in use")
	ErrIdentificationInUse = errors.New("identification already in use")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrSamePassword        = errors.New("new password must differ from the current one")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
