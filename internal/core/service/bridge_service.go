package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/api/metrics"
	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/normalize"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// Provider routes, relative to the auth base path.
const (
	routeSignUpEmail    = "/sign-up/email"
	routeSignInEmail    = "/sign-in/email"
	routeSignInUsername = "/sign-in/username"
	routeSignOut        = "/sign-out"
	routeGetSession     = "/get-session"
)

// BridgeService implements ports.BridgeService on top of a provider gateway.
type BridgeService struct {
	provider  ports.ProviderGateway
	directory ports.UserDirectory
	resolver  *IdentifierResolver
	strategy  LoginStrategy
	log       zerolog.Logger
}

func NewBridgeService(provider ports.ProviderGateway, directory ports.UserDirectory, strategy LoginStrategy, log zerolog.Logger) *BridgeService {
	if strategy == "" {
		strategy = StrategyLookupFirst
	}
	return &BridgeService{
		provider:  provider,
		directory: directory,
		resolver:  NewIdentifierResolver(directory),
		strategy:  strategy,
		log:       log,
	}
}

var _ ports.BridgeService = (*BridgeService)(nil)

func (s *BridgeService) Login(ctx context.Context, ex *ports.Exchange, in ports.LoginInput) (resp *domain.AuthResponse, err error) {
	defer func() { s.record("login", err) }()
	return s.login(ctx, ex, in)
}

func (s *BridgeService) login(ctx context.Context, ex *ports.Exchange, in ports.LoginInput) (*domain.AuthResponse, error) {
	identifier := strings.TrimSpace(in.Identifier)

	if s.strategy == StrategyNativeFirst && !IsEmail(identifier) {
		res, err := s.forwardJSON(ctx, ex, routeSignInUsername, map[string]string{
			"username": identifier,
			"password": in.Password,
		})
		if err != nil {
			return nil, err
		}
		if res.OK {
			metrics.IdentifierResolutionsTotal.WithLabelValues("native").Inc()
			return s.authResponse(res.Body, true)
		}
		if res.Status != http.StatusBadRequest && res.Status != http.StatusNotFound {
			return nil, providerError(res, "Login failed")
		}
	}

	email, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	res, err := s.forwardJSON(ctx, ex, routeSignInEmail, map[string]string{
		"email":    email,
		"password": in.Password,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, providerError(res, "Login failed")
	}
	return s.authResponse(res.Body, true)
}

// Register creates the account and, when the provider did not open a
// session itself, signs in with the new email.
func (s *BridgeService) Register(ctx context.Context, ex *ports.Exchange, in ports.RegisterInput) (resp *domain.AuthResponse, err error) {
	defer func() { s.record("register", err) }()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	res, err := s.forwardJSON(ctx, ex, routeSignUpEmail, map[string]string{
		"email":    email,
		"password": in.Password,
		"name":     in.Username,
		"username": in.Username,
		"role":     string(domain.DefaultRole),
	})
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, providerError(res, "Registration failed")
	}

	created, err := s.authResponse(res.Body, false)
	if err != nil {
		return nil, err
	}
	if created.Session != nil {
		return created, nil
	}

	return s.login(ctx, ex, ports.LoginInput{Identifier: email, Password: in.Password})
}

func (s *BridgeService) Logout(ctx context.Context, ex *ports.Exchange) (err error) {
	defer func() { s.record("logout", err) }()

	res, err := s.provider.Forward(ctx, ex, routeSignOut, ports.ProviderRequest{Method: http.MethodPost})
	if err != nil {
		return err
	}
	if !res.OK {
		return providerError(res, "Logout failed")
	}
	return nil
}

// Session returns the caller's session, or nil when the provider reports
// none. A 401 from the provider is also treated as no session.
func (s *BridgeService) Session(ctx context.Context, ex *ports.Exchange) (resp *domain.AuthResponse, err error) {
	defer func() { s.record("session", err) }()

	res, err := s.provider.Forward(ctx, ex, routeGetSession, ports.ProviderRequest{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	if res.Status == http.StatusUnauthorized {
		return nil, nil
	}
	if !res.OK {
		return nil, providerError(res, "Failed to fetch session")
	}
	if res.Body == nil {
		return nil, nil
	}
	return s.authResponse(res.Body, true)
}

func (s *BridgeService) EmailAvailable(ctx context.Context, email string) (ok bool, err error) {
	defer func() { s.record("email_availability", err) }()

	exists, err := s.directory.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return !exists, nil
}

func (s *BridgeService) UsernameAvailable(ctx context.Context, username string) (ok bool, err error) {
	defer func() { s.record("username_availability", err) }()

	exists, err := s.directory.ExistsByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return !exists, nil
}

func (s *BridgeService) forwardJSON(ctx context.Context, ex *ports.Exchange, route string, body any) (*ports.ProviderResult, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", route, err)
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return s.provider.Forward(ctx, ex, route, ports.ProviderRequest{Method: http.MethodPost, Header: h, Body: raw})
}

// authResponse normalizes a provider {user, session} payload. A missing
// session object is an error only when requireSession is set.
func (s *BridgeService) authResponse(body any, requireSession bool) (*domain.AuthResponse, error) {
	payload, ok := normalize.Object(body)
	if !ok {
		return nil, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "body"}
	}

	rawUser, ok := normalize.Object(payload["user"])
	if !ok {
		return nil, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "user"}
	}
	user, err := normalize.User(rawUser)
	if err != nil {
		return nil, err
	}
	resp := &domain.AuthResponse{User: user}

	rawSession, ok := normalize.Object(payload["session"])
	if !ok {
		if requireSession {
			return nil, &domain.NormalizeError{Kind: domain.ErrMissingField, Field: "session"}
		}
		return resp, nil
	}
	session, err := normalize.Session(rawSession)
	if err != nil {
		return nil, err
	}
	resp.Session = &session
	return resp, nil
}

func providerError(res *ports.ProviderResult, fallback string) error {
	return &domain.ProviderError{Status: res.Status, Body: normalize.AuthError(res.Body, fallback)}
}

func (s *BridgeService) record(operation string, err error) {
	var pe *domain.ProviderError
	outcome := "ok"
	switch {
	case err == nil:
	case errors.As(err, &pe):
		outcome = "rejected"
	case errors.Is(err, domain.ErrUserNotFound):
		outcome = "not_found"
	case domain.IsNormalization(err):
		outcome = "invalid"
		metrics.NormalizationFailuresTotal.WithLabelValues(normalizationKind(err)).Inc()
		s.log.Error().Err(err).Str("operation", operation).Msg("identity provider response could not be normalized")
	default:
		outcome = "error"
	}
	metrics.AuthOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func normalizationKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	default:
		return "missing_field"
	}
}
