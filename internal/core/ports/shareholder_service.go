package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// ShareholderSummary is the flat aggregate row returned by List. It is also
// the exact shape stored in the cache, so (de)serialization is type-checked.
type ShareholderSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TotalShares int64  `json:"total_shares"`
}

// CreateShareholderInput carries all data needed to open a shareholder account.
type CreateShareholderInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// ShareholderService defines the shareholder use cases.
type ShareholderService interface {
	// List returns every shareholder with their total issued shares, in the
	// repository's natural listing order.
	List(ctx context.Context) ([]ShareholderSummary, error)
	// Create opens a shareholder account (user + profile) on behalf of actor.
	// Admin only.
	Create(ctx context.Context, in CreateShareholderInput, actor *domain.User) (*domain.Shareholder, error)
}
