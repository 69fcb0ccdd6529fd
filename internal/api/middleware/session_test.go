package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

type stubBridge struct {
	ports.BridgeService
	resp   *domain.AuthResponse
	err    error
	cookie string
}

func (s *stubBridge) Session(_ context.Context, ex *ports.Exchange) (*domain.AuthResponse, error) {
	s.cookie = ex.Inbound.Get("Cookie")
	return s.resp, s.err
}

func TestRequireSession_InjectsUser(t *testing.T) {
	bridge := &stubBridge{resp: &domain.AuthResponse{
		User:    domain.User{ID: "u1", Username: "alice", Role: domain.RoleLawyer},
		Session: &domain.Session{Token: "t"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "lawauth.session_token=abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(bridge)(func(c echo.Context) error {
		if c.Get(ContextUserID) != "u1" || c.Get(ContextUsername) != "alice" {
			t.Fatalf("user not injected")
		}
		if c.Get(ContextRole) != domain.RoleLawyer {
			t.Fatalf("role not injected")
		}
		if Auth(c) == nil {
			t.Fatalf("auth response not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if bridge.cookie != "lawauth.session_token=abc" {
		t.Fatalf("inbound cookie not forwarded, got %q", bridge.cookie)
	}
}

func TestRequireSession_NoSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireSession(&stubBridge{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireSession_PropagatesErrors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireSession(&stubBridge{err: domain.ErrUpstreamUnavailable})(func(c echo.Context) error {
		return nil
	})(c)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
