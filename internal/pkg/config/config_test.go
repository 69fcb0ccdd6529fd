package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "4000" || cfg.Env != "development" || cfg.StoreDriver != "memory" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.Auth.SessionTTL != 168*time.Hour {
		t.Fatalf("unexpected durations %v %v", cfg.ShutdownTimeout, cfg.Auth.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if cfg.Auth.BasePath != "/auth" || cfg.Auth.LoginStrategy != "lookup_first" || cfg.Auth.MaxPasswordLength != 128 {
		t.Fatalf("unexpected auth defaults %+v", cfg.Auth)
	}
	if string(cfg.Auth.SigningSecret()) != devSecret {
		t.Fatalf("expected development secret fallback")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"ENV":                 "production",
		"AUTH_SECRET":         "s3cret",
		"STORE_DRIVER":        "mongo",
		"DIRECTORY_DRIVER":    "postgres",
		"DATABASE_URL":        "postgres://localhost/law",
		"CORS_ORIGINS":        "https://a.example,https://b.example",
		"AUTH_LOGIN_STRATEGY": "native_first",
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || !cfg.UsesMongo() || cfg.IsDevelopment() {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if string(cfg.Auth.SigningSecret()) != "s3cret" {
		t.Fatalf("expected configured secret")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown store", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"secret outside development", map[string]string{"ENV": "production"}, "AUTH_SECRET"},
		{"memory directory with mongo store", map[string]string{"STORE_DRIVER": "mongo"}, "DIRECTORY_DRIVER=memory"},
		{"postgres without url", map[string]string{"DIRECTORY_DRIVER": "postgres"}, "DATABASE_URL"},
		{"password bounds", map[string]string{"AUTH_MIN_PASSWORD_LENGTH": "20", "AUTH_MAX_PASSWORD_LENGTH": "10"}, "password length"},
		{"strategy", map[string]string{"AUTH_LOGIN_STRATEGY": "guess"}, "AUTH_LOGIN_STRATEGY"},
		{"rate limit", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_RemoteProviderNeedsNoSecret(t *testing.T) {
	_, err := load(t, map[string]string{
		"ENV":                "production",
		"AUTH_PROVIDER_MODE": "remote",
		"AUTH_BASE_URL":      "https://auth.example",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
