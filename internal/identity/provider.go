// Package identity is the embedded identity provider. It owns credential
// storage, password hashing and session issuance, and serves its own native
// routes (/sign-up/email, /sign-in/email, /sign-in/username, /sign-out,
// /get-session) under the auth base path. The bridge talks to it through the
// credential proxy exactly as it would talk to a remote provider.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
	"github.com/law-manager/lawauth/internal/pkg/validation"
)

const (
	defaultSessionTTL   = 7 * 24 * time.Hour
	defaultCookiePrefix = "lawauth"
	defaultMinPassword  = 8
	defaultMaxPassword  = 128
)

// Config controls provider behaviour.
type Config struct {
	BasePath      string
	Secret        []byte
	SessionTTL    time.Duration
	CookiePrefix  string
	SecureCookies bool
	// AutoSignIn issues a session as part of sign-up.
	AutoSignIn        bool
	MinPasswordLength int
	MaxPasswordLength int
}

// Provider serves the identity provider routes.
type Provider struct {
	cfg      Config
	accounts ports.AccountRepository
	sessions ports.SessionRepository
	mirror   ports.UserDirectory
	log      zerolog.Logger
	now      func() time.Time
	e        *echo.Echo
}

// New builds a Provider. mirror may be nil when no denormalized directory
// needs to be kept in sync.
func New(cfg Config, accounts ports.AccountRepository, sessions ports.SessionRepository, mirror ports.UserDirectory, log zerolog.Logger) (*Provider, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("identity: secret is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.CookiePrefix == "" {
		cfg.CookiePrefix = defaultCookiePrefix
	}
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = defaultMinPassword
	}
	if cfg.MaxPasswordLength <= 0 {
		cfg.MaxPasswordLength = defaultMaxPassword
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")

	p := &Provider{
		cfg:      cfg,
		accounts: accounts,
		sessions: sessions,
		mirror:   mirror,
		log:      log.With().Str("component", "identity").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	p.e = p.routes()
	return p, nil
}

// ServeHTTP satisfies http.Handler.
func (p *Provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.e.ServeHTTP(w, r)
}

// CookieName is the name of the session cookie.
func (p *Provider) CookieName() string {
	return p.cfg.CookiePrefix + ".session_token"
}

func (p *Provider) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = p.handleError
	e.Use(echomiddleware.Recover())

	g := e.Group(strings.TrimRight(p.cfg.BasePath, "/"))
	g.POST("/sign-up/email", p.signUpEmail)
	g.POST("/sign-in/email", p.signInEmail)
	g.POST("/sign-in/username", p.signInUsername)
	g.POST("/sign-out", p.signOut)
	g.GET("/get-session", p.getSession)
	return e
}

// beforeCreate fills the fields every account must carry.
func beforeCreate(a *domain.Account) {
	if a.Name == "" && a.Username != "" {
		a.Name = a.Username
	}
	if !a.Role.Valid() {
		a.Role = domain.DefaultRole
	}
}

// afterCreate mirrors the new account into the user directory. A failed
// mirror is logged; the account itself already exists.
func (p *Provider) afterCreate(ctx context.Context, a *domain.Account) {
	if p.mirror == nil {
		return
	}
	if err := p.mirror.Upsert(ctx, domain.EntryFromAccount(a)); err != nil {
		p.log.Error().Err(err).Str("user_id", a.ID).Msg("mirror user into directory failed")
	}
}

func (p *Provider) issueSession(ctx context.Context, c echo.Context, userID string) (*domain.ProviderSession, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := p.now()
	s := &domain.ProviderSession{
		ID:        "sess_" + uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(p.cfg.SessionTTL).Truncate(time.Millisecond),
		CreatedAt: now.Truncate(time.Millisecond),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if err := p.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if err := p.setSessionCookie(c, s); err != nil {
		return nil, err
	}
	return s, nil
}

// currentSession resolves the session named by the request cookie. It
// returns domain.ErrSessionNotFound when there is none.
func (p *Provider) currentSession(c echo.Context) (*domain.ProviderSession, error) {
	token, err := p.readSessionCookie(c)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	s, err := p.sessions.FindByToken(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	if s.Expired(p.now()) {
		_ = p.sessions.Delete(c.Request().Context(), token)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}
