package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/infrastructure/db/memory"
)

type failingDirectory struct{ memory.Directory }

func (f *failingDirectory) Upsert(context.Context, *domain.DirectoryEntry) error {
	return errors.New("directory down")
}

type fixture struct {
	p        *Provider
	accounts *memory.AccountRepository
	sessions *memory.SessionRepository
	dir      *memory.Directory
}

func newFixture(t *testing.T, autoSignIn bool) *fixture {
	t.Helper()
	f := &fixture{
		accounts: memory.NewAccountRepository(),
		sessions: memory.NewSessionRepository(),
		dir:      memory.NewDirectory(),
	}
	p, err := New(Config{
		BasePath:   "/auth",
		Secret:     []byte("test-secret"),
		AutoSignIn: autoSignIn,
	}, f.accounts, f.sessions, f.dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	f.p = p
	return f
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.p.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set; headers: %v", name, rec.Header())
	return nil
}

const aliceSignUp = `{"email":"Alice@Example.com","password":"s3cretpass","username":"alice","role":"master"}`

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{}, memory.NewAccountRepository(), memory.NewSessionRepository(), nil, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestSignUp_CreatesAccountWithDefaults(t *testing.T) {
	f := newFixture(t, false)

	rec := f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["token"] != nil {
		t.Fatalf("expected null token without auto sign-in, got %v", resp["token"])
	}
	user := resp["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Errorf("expected lower-cased email, got %v", user["email"])
	}
	if user["role"] != string(domain.RoleAssistant) {
		t.Errorf("client-supplied role must be ignored, got %v", user["role"])
	}
	if user["name"] != "alice" {
		t.Errorf("expected name defaulted to username, got %v", user["name"])
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("no cookie expected without auto sign-in")
	}

	entry, err := f.dir.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected directory mirror, got %v", err)
	}
	if entry.Role != domain.RoleAssistant {
		t.Errorf("mirrored role = %s", entry.Role)
	}
}

func TestSignUp_AutoSignInIssuesSession(t *testing.T) {
	f := newFixture(t, true)

	rec := f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sessionCookie(t, rec, f.p.CookieName())

	var resp signUpResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == nil || resp.Session == nil || *resp.Token != resp.Session.Token {
		t.Fatalf("expected token and session, got %+v", resp)
	}
}

func TestSignUp_Duplicate(t *testing.T) {
	f := newFixture(t, false)
	f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)

	rec := f.do(http.MethodPost, "/auth/sign-up/email", `{"email":"alice@example.com","password":"s3cretpass","username":"alice2"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "USER_ALREADY_EXISTS") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestSignUp_PasswordLimits(t *testing.T) {
	f := newFixture(t, false)

	rec := f.do(http.MethodPost, "/auth/sign-up/email", `{"email":"a@x.com","password":"short","username":"alice"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "PASSWORD_TOO_SHORT") {
		t.Fatalf("expected PASSWORD_TOO_SHORT, got %d %s", rec.Code, rec.Body.String())
	}

	long := strings.Repeat("x", 129)
	rec = f.do(http.MethodPost, "/auth/sign-up/email", `{"email":"a@x.com","password":"`+long+`","username":"alice"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "PASSWORD_TOO_LONG") {
		t.Fatalf("expected PASSWORD_TOO_LONG, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSignUp_MirrorFailureIsNotFatal(t *testing.T) {
	accounts := memory.NewAccountRepository()
	p, err := New(Config{Secret: []byte("s")}, accounts, memory.NewSessionRepository(), &failingDirectory{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/sign-up/email", strings.NewReader(aliceSignUp))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := accounts.FindByUsername(context.Background(), "alice"); err != nil {
		t.Fatalf("account should exist: %v", err)
	}
}

func TestSignIn(t *testing.T) {
	f := newFixture(t, false)
	f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)

	tests := []struct {
		name string
		path string
		body string
		want int
		code string
	}{
		{"email ok", "/auth/sign-in/email", `{"email":"ALICE@example.com","password":"s3cretpass"}`, http.StatusOK, ""},
		{"email wrong password", "/auth/sign-in/email", `{"email":"alice@example.com","password":"nopenopenope"}`, http.StatusUnauthorized, "INVALID_EMAIL_OR_PASSWORD"},
		{"email unknown", "/auth/sign-in/email", `{"email":"ghost@example.com","password":"s3cretpass"}`, http.StatusUnauthorized, "INVALID_EMAIL_OR_PASSWORD"},
		{"username ok", "/auth/sign-in/username", `{"username":"alice","password":"s3cretpass"}`, http.StatusOK, ""},
		{"username wrong password", "/auth/sign-in/username", `{"username":"alice","password":"nopenopenope"}`, http.StatusUnauthorized, "INVALID_USERNAME_OR_PASSWORD"},
		{"username unknown", "/auth/sign-in/username", `{"username":"ghost","password":"s3cretpass"}`, http.StatusNotFound, "USER_NOT_FOUND"},
		{"missing fields", "/auth/sign-in/email", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad body", "/auth/sign-in/email", `{`, http.StatusBadRequest, "INVALID_BODY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.code != "" && !strings.Contains(rec.Body.String(), tt.code) {
				t.Errorf("expected code %s in %s", tt.code, rec.Body.String())
			}
			if tt.want == http.StatusOK {
				sessionCookie(t, rec, f.p.CookieName())
			}
		})
	}
}

func TestGetSession_Lifecycle(t *testing.T) {
	f := newFixture(t, false)
	f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)

	rec := f.do(http.MethodGet, "/auth/get-session", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null session without cookie, got %d %s", rec.Code, rec.Body.String())
	}

	login := f.do(http.MethodPost, "/auth/sign-in/username", `{"username":"alice","password":"s3cretpass"}`)
	cookie := sessionCookie(t, login, f.p.CookieName())

	rec = f.do(http.MethodGet, "/auth/get-session", "", cookie)
	var env sessionEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if env.User.Username != "alice" || env.Session.Token == "" || !strings.HasPrefix(env.Session.ID, "sess_") {
		t.Fatalf("unexpected envelope %+v", env)
	}

	out := f.do(http.MethodPost, "/auth/sign-out", "", cookie)
	if out.Code != http.StatusOK {
		t.Fatalf("sign-out: %d", out.Code)
	}
	cleared := sessionCookie(t, out, f.p.CookieName())
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("expected cleared cookie, got %+v", cleared)
	}

	rec = f.do(http.MethodGet, "/auth/get-session", "", cookie)
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("session should be gone after sign-out, got %s", rec.Body.String())
	}
}

func TestGetSession_RejectsForgedCookie(t *testing.T) {
	f := newFixture(t, false)
	rec := f.do(http.MethodGet, "/auth/get-session", "", &http.Cookie{Name: f.p.CookieName(), Value: "not-a-jwt"})
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null, got %s", rec.Body.String())
	}
}

func TestGetSession_Expired(t *testing.T) {
	f := newFixture(t, false)
	f.do(http.MethodPost, "/auth/sign-up/email", aliceSignUp)
	login := f.do(http.MethodPost, "/auth/sign-in/username", `{"username":"alice","password":"s3cretpass"}`)
	cookie := sessionCookie(t, login, f.p.CookieName())

	f.p.now = func() time.Time { return time.Now().UTC().Add(8 * 24 * time.Hour) }

	rec := f.do(http.MethodGet, "/auth/get-session", "", cookie)
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null for expired session, got %s", rec.Body.String())
	}
}
