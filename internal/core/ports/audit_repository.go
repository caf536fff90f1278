package ports

import (
	"context"

	"github.com/captable/captable-api/internal/core/domain"
)

// AuditRepository appends to and reads the append-only audit log.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) (*domain.AuditEvent, error)
	List(ctx context.Context) ([]*domain.AuditEvent, error)
}
