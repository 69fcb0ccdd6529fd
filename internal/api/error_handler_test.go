package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   domain.AuthError
		logged bool
	}{
		{"validation", &domain.ValidationError{Details: "identifier is required"}, http.StatusBadRequest, domain.AuthError{Error: "Invalid request", Details: "identifier is required"}, false},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, domain.AuthError{Error: "User not found"}, false},
		{"provider", &domain.ProviderError{Status: http.StatusUnauthorized, Body: domain.AuthError{Error: "Invalid email or password"}}, http.StatusUnauthorized, domain.AuthError{Error: "Invalid email or password"}, false},
		{"provider odd status", &domain.ProviderError{Status: http.StatusFound, Body: domain.AuthError{Error: "Login failed"}}, http.StatusBadGateway, domain.AuthError{Error: "Login failed"}, false},
		{"normalization", &domain.NormalizeError{Kind: domain.ErrMissingToken, Field: "session.token"}, http.StatusInternalServerError, domain.AuthError{Error: "Invalid response from auth provider"}, true},
		{"upstream", fmt.Errorf("%w: dial tcp", domain.ErrUpstreamUnavailable), http.StatusInternalServerError, domain.AuthError{Error: "Auth provider unavailable"}, true},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, domain.AuthError{Error: "Method Not Allowed"}, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, domain.AuthError{Error: "internal server error"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

			NewHTTPErrorHandler(zerolog.New(&logs))(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			var got domain.AuthError
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.body {
				t.Fatalf("expected body %+v, got %+v", tt.body, got)
			}
			if logged := logs.Len() > 0; logged != tt.logged {
				t.Fatalf("logged = %v, want %v (%s)", logged, tt.logged, logs.String())
			}
		})
	}
}
