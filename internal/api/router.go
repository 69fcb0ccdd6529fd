package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/law-manager/lawauth/docs"
	"github.com/law-manager/lawauth/internal/api/handler"
	"github.com/law-manager/lawauth/internal/api/middleware"
	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
	"github.com/law-manager/lawauth/internal/pkg/validation"
)

// RouterConfig lists everything the HTTP surface depends on.
type RouterConfig struct {
	Bridge ports.BridgeService
	// Provider is the embedded identity provider, mounted under
	// ProviderBasePath. Nil when the provider is remote.
	Provider         http.Handler
	ProviderBasePath string
	CORSOrigins      []string
	Checkers         []ports.HealthChecker
	// RateLimiter throttles the credential endpoints. Optional.
	RateLimiter *middleware.RateLimiter
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(cfg.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		ExposeHeaders:    []string{"Set-Cookie"},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "lawauth",
		Registerer: cfg.Registerer,
		Skipper:    skipMetrics,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Bridge)
	healthHandler := handler.NewHealthHandler(cfg.Checkers...)
	routesHandler := handler.NewRoutesHandler(e.Routes)
	requireSession := middleware.RequireSession(cfg.Bridge)

	var limited []echo.MiddlewareFunc
	if cfg.RateLimiter != nil {
		limited = append(limited, cfg.RateLimiter.Middleware())
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, limited...)
	e.POST("/auth/register", authHandler.Register, limited...)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/email-availability", authHandler.EmailAvailability, limited...)
	e.POST("/auth/username-availability", authHandler.UsernameAvailability, limited...)
	e.GET("/auth/roles", handler.Roles, requireSession)

	// --- Identity provider (native routes) ---
	if cfg.Provider != nil {
		base := "/" + strings.Trim(cfg.ProviderBasePath, "/")
		e.Any(strings.TrimRight(base, "/")+"/*", echo.WrapHandler(cfg.Provider), limited...)
	}

	// --- Meta ---
	e.GET("/", handler.Root)
	e.GET("/routes", routesHandler.List, requireSession, middleware.RBAC(domain.RoleMaster, domain.RoleAdmin))
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	return e
}

func skipMetrics(c echo.Context) bool {
	return c.Path() == "/metrics"
}
