package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
	"github.com/captable/captable-api/internal/metrics"
)

// CertificateService resolves an issuance, checks ownership and delegates
// rendering. Generation is read-only: no caching, no audit event.
type CertificateService struct {
	issuances    ports.IssuanceRepository
	shareholders ports.ShareholderRepository
	renderer     ports.CertificateRenderer
	log          zerolog.Logger
}

func NewCertificateService(
	issuances ports.IssuanceRepository,
	shareholders ports.ShareholderRepository,
	renderer ports.CertificateRenderer,
	log zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		issuances:    issuances,
		shareholders: shareholders,
		renderer:     renderer,
		log:          log,
	}
}

// Generate returns the certificate document for one issuance. Admins may
// generate for any issuance; a shareholder only for issuances owned by their
// own profile.
func (s *CertificateService) Generate(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error) {
	iss, err := s.issuances.FindByID(ctx, issuanceID)
	if err != nil {
		return nil, err
	}
	sh, err := s.shareholders.FindByID(ctx, iss.ShareholderID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		own, err := s.shareholders.FindByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrShareholderNotFound) {
				return nil, fmt.Errorf("cannot access this certificate: %w", domain.ErrForbidden)
			}
			return nil, err
		}
		if own.ID != sh.ID {
			return nil, fmt.Errorf("cannot access this certificate: %w", domain.ErrForbidden)
		}
	}

	start := time.Now()
	doc, err := s.renderer.Render(sh, iss)
	if err != nil {
		s.log.Error().Err(err).Int64("issuance_id", issuanceID).Msg("certificate rendering failed")
		return nil, err
	}
	metrics.CertificateRenderDuration.Observe(time.Since(start).Seconds())

	return doc, nil
}
