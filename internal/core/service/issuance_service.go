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

// IssuanceService implements the role-scoped issuance listing and admin-gated
// share issuance.
type IssuanceService struct {
	issuances    ports.IssuanceRepository
	shareholders ports.ShareholderRepository
	audits       ports.AuditRepository
	cache        ports.Cache
	notifier     ports.Notifier
	log          zerolog.Logger
}

func NewIssuanceService(
	issuances ports.IssuanceRepository,
	shareholders ports.ShareholderRepository,
	audits ports.AuditRepository,
	cache ports.Cache,
	notifier ports.Notifier,
	log zerolog.Logger,
) *IssuanceService {
	return &IssuanceService{
		issuances:    issuances,
		shareholders: shareholders,
		audits:       audits,
		cache:        cache,
		notifier:     notifier,
		log:          log,
	}
}

// List returns the issuances visible to actor, denormalized with shareholder
// identity. Admins see everything; shareholders see only their own. The cache
// key is role- and identity-scoped so entries are never shared across callers.
func (s *IssuanceService) List(ctx context.Context, actor *domain.User) ([]ports.IssuanceView, error) {
	key := adminIssuancesCacheKey
	if !actor.IsAdmin() {
		key = issuancesCacheKey(actor.ID)
	}

	var cached []ports.IssuanceView
	hit, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.CacheOpsTotal.WithLabelValues("issuances_list", "error").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	case hit:
		metrics.CacheOpsTotal.WithLabelValues("issuances_list", "hit").Inc()
		return cached, nil
	default:
		metrics.CacheOpsTotal.WithLabelValues("issuances_list", "miss").Inc()
	}

	var result []ports.IssuanceView
	if actor.IsAdmin() {
		result, err = s.listAll(ctx)
	} else {
		result, err = s.listOwn(ctx, actor)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return result, nil
}

func (s *IssuanceService) listAll(ctx context.Context) ([]ports.IssuanceView, error) {
	issuances, err := s.issuances.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ports.IssuanceView, 0, len(issuances))
	for _, iss := range issuances {
		view := newIssuanceView(iss)
		sh, err := s.shareholders.FindByID(ctx, iss.ShareholderID)
		switch {
		case err == nil:
			view.ShareholderID = &sh.ID
			view.ShareholderName = sh.Name
			view.ShareholderEmail = sh.Email
		case errors.Is(err, domain.ErrShareholderNotFound):
			// Dangling reference: tolerated, rendered with placeholders.
			view.ShareholderName = "Unknown"
			view.ShareholderEmail = "Unknown"
		default:
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *IssuanceService) listOwn(ctx context.Context, actor *domain.User) ([]ports.IssuanceView, error) {
	sh, err := s.shareholders.FindByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrShareholderNotFound) {
			return nil, domain.ErrNoShareholderProfile
		}
		return nil, err
	}

	issuances, err := s.issuances.ListByShareholder(ctx, sh.ID)
	if err != nil {
		return nil, err
	}

	result := make([]ports.IssuanceView, 0, len(issuances))
	for _, iss := range issuances {
		view := newIssuanceView(iss)
		view.ShareholderID = &sh.ID
		view.ShareholderName = sh.Name
		view.ShareholderEmail = sh.Email
		result = append(result, view)
	}
	return result, nil
}

func newIssuanceView(iss *domain.ShareIssuance) ports.IssuanceView {
	return ports.IssuanceView{
		IssuanceID:     iss.ID,
		Date:           iss.Date.UTC().Format(time.RFC3339),
		Price:          iss.Price,
		NumberOfShares: iss.NumberOfShares,
	}
}

// Create records a share issuance. Checks run in a fixed precedence: role,
// then share count, then price, then shareholder existence; negative tests
// rely on this ordering.
func (s *IssuanceService) Create(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admin can issue shares: %w", domain.ErrForbidden)
	}
	if in.NumberOfShares <= 0 {
		return nil, domain.ErrInvalidShareCount
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	sh, err := s.shareholders.FindByID(ctx, in.ShareholderID)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	created, err := s.issuances.Create(ctx, &domain.ShareIssuance{
		ShareholderID:  sh.ID,
		NumberOfShares: in.NumberOfShares,
		Price:          in.Price,
		Date:           date,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("shareholder_id", sh.ID).Msg("failed to create issuance")
		return nil, err
	}

	if _, err := s.audits.Create(ctx, &domain.AuditEvent{
		Action:    domain.AuditActionIssueShares,
		Timestamp: time.Now().UTC(),
		UserID:    actor.ID,
		Details:   fmt.Sprintf("issued %d shares to shareholder %d", created.NumberOfShares, sh.ID),
	}); err != nil {
		s.log.Warn().Err(err).Int64("issuance_id", created.ID).Msg("failed to record audit event")
	}

	// Fire-and-forget; Enqueue never blocks.
	s.notifier.Enqueue(ports.IssuanceNotification{
		Email:          sh.Email,
		ShareholderID:  sh.ID,
		NumberOfShares: created.NumberOfShares,
	})

	// Totals and both issuance listings are stale now. The per-shareholder key
	// is scoped by the owning user id.
	if err := s.cache.Delete(ctx, shareholdersCacheKey, adminIssuancesCacheKey, issuancesCacheKey(sh.UserID)); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}

	metrics.IssuancesCreatedTotal.Inc()
	s.log.Info().
		Int64("issuance_id", created.ID).
		Int64("shareholder_id", sh.ID).
		Int64("shares", created.NumberOfShares).
		Str("actor", actor.Username).
		Msg("shares issued")
	return created, nil
}
