package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
)

// Token claims are pinned to this issuer/audience pair; verification rejects
// anything else.
const (
	TokenIssuer   = "captable-app"
	TokenAudience = "api-users"
)

// AuthService implements authentication and token issuance.
type AuthService struct {
	users     ports.UserRepository
	audits    ports.AuditRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, audits ports.AuditRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{users: users, audits: audits, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Authenticate verifies the password against the stored bcrypt hash. Both an
// unknown username and a wrong password yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user, records a login audit event and returns a
// signed access token. The audit append is best-effort: a failed insert is
// logged but does not fail the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	if _, err := s.audits.Create(ctx, &domain.AuditEvent{
		Action:    domain.AuditActionLogin,
		Timestamp: time.Now().UTC(),
		UserID:    user.ID,
	}); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login audit event")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", username).Msg("user logged in")
	return token, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
