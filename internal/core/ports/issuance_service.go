package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/captable/captable-api/internal/core/domain"
)

// IssuanceView is an issuance denormalized with its shareholder's identity.
// ShareholderID is nil when the shareholder record is missing (tolerated
// dangling reference); name and email then carry "Unknown" placeholders.
// This is the exact shape stored in the cache.
type IssuanceView struct {
	IssuanceID       int64           `json:"issuance_id"`
	Date             string          `json:"date"`
	Price            decimal.Decimal `json:"price"`
	NumberOfShares   int64           `json:"number_of_shares"`
	ShareholderID    *int64          `json:"shareholder_id"`
	ShareholderName  string          `json:"shareholder_name"`
	ShareholderEmail string          `json:"shareholder_email"`
}

// CreateIssuanceInput carries all data needed to issue shares.
// A zero Date means "now".
type CreateIssuanceInput struct {
	ShareholderID  int64
	NumberOfShares int64
	Price          decimal.Decimal
	Date           time.Time
}

// IssuanceService defines the share-issuance use cases.
type IssuanceService interface {
	// List returns the issuances the actor may see: all of them for admins,
	// only their own for shareholders.
	List(ctx context.Context, actor *domain.User) ([]IssuanceView, error)
	// Create issues shares to a shareholder on behalf of actor. Admin only.
	Create(ctx context.Context, in CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error)
}

// CertificateService produces share certificate documents.
type CertificateService interface {
	// Generate renders the certificate for one issuance. Admins may generate
	// for any issuance; a shareholder only for their own.
	Generate(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error)
}

// AuditService reads the audit log.
type AuditService interface {
	// List returns the full audit log. Admin only.
	List(ctx context.Context, actor *domain.User) ([]*domain.AuditEvent, error)
}
