package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// AuthService authenticates users and issues bearer tokens.
type AuthService interface {
	// Authenticate verifies a username/password pair. It returns
	// domain.ErrInvalidCredentials for both an unknown user and a wrong
	// password, and has no side effects beyond the read.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates, appends a login audit event and returns a signed
	// access token.
	Login(ctx context.Context, username, password string) (string, error)
}
