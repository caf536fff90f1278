package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/captable/captable-api/internal/api/handler"
	"github.com/captable/captable-api/internal/api/middleware"
	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
	"github.com/captable/captable-api/internal/core/service"
	"github.com/captable/captable-api/internal/infrastructure/db/postgres"
	rediscache "github.com/captable/captable-api/internal/infrastructure/db/redis"
	"github.com/captable/captable-api/internal/infrastructure/pdf"
)

// Options carries the dependencies the router wires together.
type Options struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Notifier  ports.Notifier
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("captable"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(opts.Pool)
	shareholderRepo := postgres.NewShareholderRepository(opts.Pool)
	issuanceRepo := postgres.NewIssuanceRepository(opts.Pool)
	auditRepo := postgres.NewAuditRepository(opts.Pool)
	cache := rediscache.NewCache(opts.Redis)

	authService := service.NewAuthService(userRepo, auditRepo, opts.JWTSecret, opts.TokenTTL, opts.Logger)
	shareholderService := service.NewShareholderService(userRepo, shareholderRepo, issuanceRepo, auditRepo, cache, opts.Logger)
	issuanceService := service.NewIssuanceService(issuanceRepo, shareholderRepo, auditRepo, cache, opts.Notifier, opts.Logger)
	certificateService := service.NewCertificateService(issuanceRepo, shareholderRepo, pdf.NewCertificateRenderer(), opts.Logger)
	auditService := service.NewAuditService(auditRepo)

	authHandler := handler.NewAuthHandler(authService)
	shareholderHandler := handler.NewShareholderHandler(shareholderService)
	issuanceHandler := handler.NewIssuanceHandler(issuanceService, certificateService)
	auditHandler := handler.NewAuditHandler(auditService)

	authMiddleware := middleware.Auth(opts.JWTSecret, userRepo)

	// --- Token endpoint (rate-limited, no auth) ---
	loginLimiter := echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5.0 / 60.0), // 5 logins per minute per IP
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
	})
	e.POST("/api/token", authHandler.Login, loginLimiter)

	// --- Authenticated API ---
	g := e.Group("/api", authMiddleware)
	g.GET("/shareholders", shareholderHandler.List, middleware.RBAC(domain.RoleAdmin))
	g.POST("/shareholders", shareholderHandler.Create)
	g.GET("/issuances", issuanceHandler.List)
	g.POST("/issuances", issuanceHandler.Create)
	g.GET("/issuances/:id/certificate", issuanceHandler.Certificate)
	g.GET("/audits", auditHandler.List, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Pool, opts.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
