package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for every authentication failure;
	// callers must not be able to tell a wrong password from an unknown user.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrForbidden    = errors.New("access forbidden")
	ErrUserNotFound = errors.New("user not found")

	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailInUse           = errors.New("email is already in use")
	ErrInvalidShareCount    = errors.New("number of shares must be positive")
	ErrNegativePrice        = errors.New("price must not be negative")
	ErrNoShareholderProfile = errors.New("no shareholder profile")
	ErrShareholderNotFound  = errors.New("shareholder not found")
	ErrIssuanceNotFound     = errors.New("issuance not found")
)
