package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
	"github.com/captable/captable-api/internal/metrics"
)

// ShareholderService implements the shareholder use cases: the cached
// aggregate listing and admin-gated account creation.
type ShareholderService struct {
	users        ports.UserRepository
	shareholders ports.ShareholderRepository
	issuances    ports.IssuanceRepository
	audits       ports.AuditRepository
	cache        ports.Cache
	log          zerolog.Logger
}

func NewShareholderService(
	users ports.UserRepository,
	shareholders ports.ShareholderRepository,
	issuances ports.IssuanceRepository,
	audits ports.AuditRepository,
	cache ports.Cache,
	log zerolog.Logger,
) *ShareholderService {
	return &ShareholderService{
		users:        users,
		shareholders: shareholders,
		issuances:    issuances,
		audits:       audits,
		cache:        cache,
		log:          log,
	}
}

// List returns every shareholder with their aggregate total_shares. The result
// is read through the cache; a cache failure degrades silently to a miss.
func (s *ShareholderService) List(ctx context.Context) ([]ports.ShareholderSummary, error) {
	var cached []ports.ShareholderSummary
	hit, err := s.cache.Get(ctx, shareholdersCacheKey, &cached)
	switch {
	case err != nil:
		metrics.CacheOpsTotal.WithLabelValues("shareholders_list", "error").Inc()
		s.log.Warn().Err(err).Str("key", shareholdersCacheKey).Msg("cache read failed, falling back to store")
	case hit:
		metrics.CacheOpsTotal.WithLabelValues("shareholders_list", "hit").Inc()
		return cached, nil
	default:
		metrics.CacheOpsTotal.WithLabelValues("shareholders_list", "miss").Inc()
	}

	shareholders, err := s.shareholders.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ports.ShareholderSummary, 0, len(shareholders))
	for _, sh := range shareholders {
		issuances, err := s.issuances.ListByShareholder(ctx, sh.ID)
		if err != nil {
			return nil, err
		}
		var total int64
		for _, iss := range issuances {
			total += iss.NumberOfShares
		}
		result = append(result, ports.ShareholderSummary{
			ID:          sh.ID,
			Name:        sh.Name,
			Email:       sh.Email,
			TotalShares: total,
		})
	}

	if err := s.cache.Set(ctx, shareholdersCacheKey, result, cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", shareholdersCacheKey).Msg("cache write failed")
	}
	return result, nil
}

// Create opens a shareholder account: a SHAREHOLDER-role user plus its
// profile, inserted in one transaction. Both uniqueness checks run before any
// write, so a validation failure leaves no partial state.
func (s *ShareholderService) Create(ctx context.Context, in ports.CreateShareholderInput, actor *domain.User) (*domain.Shareholder, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admin can create shareholders: %w", domain.ErrForbidden)
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("username %q: %w", in.Username, domain.ErrUsernameTaken)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.shareholders.FindByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("email %q: %w", in.Email, domain.ErrEmailInUse)
	} else if !errors.Is(err, domain.ErrShareholderNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         domain.RoleShareholder,
	}
	profile := &domain.Shareholder{
		Name:  in.Name,
		Email: in.Email,
	}

	_, created, err := s.shareholders.CreateWithUser(ctx, user, profile)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to create shareholder")
		return nil, err
	}

	if _, err := s.audits.Create(ctx, &domain.AuditEvent{
		Action:    domain.AuditActionCreateShareholder,
		Timestamp: time.Now().UTC(),
		UserID:    actor.ID,
		Details:   fmt.Sprintf("created shareholder %d", created.ID),
	}); err != nil {
		s.log.Warn().Err(err).Int64("shareholder_id", created.ID).Msg("failed to record audit event")
	}

	// The aggregate list is stale now; drop it after the store write committed.
	if err := s.cache.Delete(ctx, shareholdersCacheKey); err != nil {
		s.log.Warn().Err(err).Str("key", shareholdersCacheKey).Msg("cache invalidation failed")
	}

	metrics.ShareholdersCreatedTotal.Inc()
	s.log.Info().Int64("shareholder_id", created.ID).Str("actor", actor.Username).Msg("shareholder created")
	return created, nil
}
