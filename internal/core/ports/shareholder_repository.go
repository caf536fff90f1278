package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// ShareholderRepository defines persistence operations for shareholders.
// Find methods return domain.ErrShareholderNotFound when no row matches.
type ShareholderRepository interface {
	// CreateWithUser inserts the account user and its shareholder profile in a
	// single transaction; either both rows exist afterwards or neither does.
	CreateWithUser(ctx context.Context, user *domain.User, sh *domain.Shareholder) (*domain.User, *domain.Shareholder, error)
	FindByID(ctx context.Context, id int64) (*domain.Shareholder, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Shareholder, error)
	FindByEmail(ctx context.Context, email string) (*domain.Shareholder, error)
	// List returns all shareholders in the store's natural listing order.
	List(ctx context.Context) ([]*domain.Shareholder, error)
}
