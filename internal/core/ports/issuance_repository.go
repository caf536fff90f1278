package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// IssuanceRepository defines persistence operations for share issuances.
// FindByID returns domain.ErrIssuanceNotFound when no row matches.
type IssuanceRepository interface {
	Create(ctx context.Context, iss *domain.ShareIssuance) (*domain.ShareIssuance, error)
	FindByID(ctx context.Context, id int64) (*domain.ShareIssuance, error)
	List(ctx context.Context) ([]*domain.ShareIssuance, error)
	ListByShareholder(ctx context.Context, shareholderID int64) ([]*domain.ShareIssuance, error)
}
