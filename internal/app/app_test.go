package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/pkg/config"
)

type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, env map[string]string) *client {
	t.Helper()
	base := map[string]string{
		"ENV":              "test",
		"AUTH_SECRET":      "e2e-secret",
		"RATE_LIMIT_BURST": "100",
	}
	for k, v := range env {
		base[k] = v
	}
	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(base))
	require.NoError(t, err)

	a, err := New(context.Background(), cfg, Options{Registerer: prometheus.NewRegistry()}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	return &client{t: t, app: a, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const aliceRegistration = `{"email":"a@x.com","username":"alice","password":"password1"}`

func TestRegisterThenSession(t *testing.T) {
	c := newClient(t, nil)

	rec := c.do(http.MethodPost, "/auth/register", aliceRegistration)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	reg := decode[domain.AuthResponse](t, rec)
	assert.Equal(t, "alice", reg.User.Username)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.Equal(t, domain.RoleAssistant, reg.User.Role)
	require.NotNil(t, reg.Session)
	assert.NotEmpty(t, reg.Session.Token)
	assert.Len(t, c.cookies, 1, "session cookie relayed to the client")

	rec = c.do(http.MethodGet, "/auth/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decode[domain.AuthResponse](t, rec)
	assert.Equal(t, reg.User, sess.User)
	assert.Equal(t, reg.Session.Token, sess.Session.Token)
}

func TestRegister_WithProviderAutoSignIn(t *testing.T) {
	c := newClient(t, map[string]string{"AUTH_AUTO_SIGN_IN": "true"})

	rec := c.do(http.MethodPost, "/auth/register", aliceRegistration)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reg := decode[domain.AuthResponse](t, rec)
	require.NotNil(t, reg.Session)
	assert.Len(t, rec.Result().Cookies(), 1, "inline session sets exactly one cookie")
}

func TestRegister_Duplicate(t *testing.T) {
	c := newClient(t, nil)
	c.do(http.MethodPost, "/auth/register", aliceRegistration)

	rec := c.do(http.MethodPost, "/auth/register", aliceRegistration)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "User already exists", decode[domain.AuthError](t, rec).Error)
}

func TestRegister_Validation(t *testing.T) {
	c := newClient(t, nil)

	rec := c.do(http.MethodPost, "/auth/register", `{"email":"nope","username":"a!","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[domain.AuthError](t, rec)
	assert.Equal(t, "Invalid request", body.Error)
	assert.Contains(t, body.Details, "email")
}

func TestLogin(t *testing.T) {
	c := newClient(t, nil)
	c.do(http.MethodPost, "/auth/register", aliceRegistration)
	c.do(http.MethodPost, "/auth/logout", "")

	t.Run("by username", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"password1"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "alice", decode[domain.AuthResponse](t, rec).User.Username)
	})

	t.Run("by email", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"A@X.com","password":"password1"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("wrong password is a provider rejection", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"wrongpass"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decode[domain.AuthError](t, rec).Error)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"ghost","password":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domain.AuthError{Error: "User not found"}, decode[domain.AuthError](t, rec))
	})
}

func TestLogin_NativeFirst(t *testing.T) {
	c := newClient(t, map[string]string{"AUTH_LOGIN_STRATEGY": "native_first"})
	c.do(http.MethodPost, "/auth/register", aliceRegistration)

	rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/auth/login", `{"identifier":"alice","password":"wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/auth/login", `{"identifier":"ghost","password":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_WithoutCookieIsNull(t *testing.T) {
	c := newClient(t, nil)

	rec := c.do(http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestLogout(t *testing.T) {
	c := newClient(t, nil)
	c.do(http.MethodPost, "/auth/register", aliceRegistration)
	require.Len(t, c.cookies, 1)

	rec := c.do(http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Empty(t, c.cookies)

	rec = c.do(http.MethodGet, "/auth/session", "")
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestAvailability(t *testing.T) {
	c := newClient(t, nil)
	c.do(http.MethodPost, "/auth/register", aliceRegistration)

	rec := c.do(http.MethodPost, "/auth/email-availability", `{"email":"a@x.com"}`)
	assert.JSONEq(t, `{"email":"a@x.com","available":false}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/auth/username-availability", `{"username":"bob"}`)
	assert.JSONEq(t, `{"username":"bob","available":true}`, rec.Body.String())
}

func TestRoutesAndRoles_RequireSession(t *testing.T) {
	c := newClient(t, nil)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/routes", "").Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/auth/roles", "").Code)

	c.do(http.MethodPost, "/auth/register", aliceRegistration)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/auth/roles", "").Code)
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/routes", "").Code, "assistants may not list routes")
}

func TestMetaRoutes(t *testing.T) {
	c := newClient(t, nil)

	assert.JSONEq(t, `{"name":"law-manager-server","status":"ok"}`, c.do(http.MethodGet, "/", "").Body.String())
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "").Code)

	rec := c.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","dependencies":{}}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/metrics", "").Code)
}

func TestLogin_SessionRecordsClientAddress(t *testing.T) {
	c := newClient(t, nil)
	c.do(http.MethodPost, "/auth/register", aliceRegistration)

	rec := c.do(http.MethodGet, "/auth/get-session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Session struct {
			IPAddress string `json:"ipAddress"`
		} `json:"session"`
	}](t, rec)
	assert.Equal(t, "192.0.2.1", body.Session.IPAddress, "httptest requests come from 192.0.2.1")
}

func TestProviderNativeRoutesAreMounted(t *testing.T) {
	c := newClient(t, nil)

	rec := c.do(http.MethodGet, "/auth/get-session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}
