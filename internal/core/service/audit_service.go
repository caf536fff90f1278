package service

import (
	"context"
	"fmt"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
)

// AuditService exposes the audit log to administrators.
type AuditService struct {
	audits ports.AuditRepository
}

func NewAuditService(audits ports.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

// List returns the full audit log in natural order. Admin only.
func (s *AuditService) List(ctx context.Context, actor *domain.User) ([]*domain.AuditEvent, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admin can read the audit log: %w", domain.ErrForbidden)
	}
	return s.audits.List(ctx)
}
