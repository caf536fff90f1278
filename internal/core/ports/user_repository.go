package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Find methods return domain.ErrUserNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
