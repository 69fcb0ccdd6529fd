package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/law-manager/lawauth/internal/api/metrics"
	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// LoginStrategy selects how a username identifier reaches the provider.
type LoginStrategy string

const (
	// StrategyLookupFirst resolves usernames to emails through the user
	// directory and always signs in by email.
	StrategyLookupFirst LoginStrategy = "lookup_first"
	// StrategyNativeFirst tries the provider's username sign-in first and
	// falls back to StrategyLookupFirst on a 400 or 404 rejection.
	StrategyNativeFirst LoginStrategy = "native_first"
)

// ParseLoginStrategy accepts the configured strategy name.
func ParseLoginStrategy(s string) (LoginStrategy, error) {
	switch LoginStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyLookupFirst:
		return StrategyLookupFirst, nil
	case StrategyNativeFirst:
		return StrategyNativeFirst, nil
	}
	return "", fmt.Errorf("unknown login strategy %q", s)
}

// IsEmail reports whether a login identifier is treated as an email.
func IsEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// IdentifierResolver turns a username-or-email identifier into the email
// the provider authenticates with.
type IdentifierResolver struct {
	directory ports.UserDirectory
}

func NewIdentifierResolver(directory ports.UserDirectory) *IdentifierResolver {
	return &IdentifierResolver{directory: directory}
}

// Resolve returns the lower-cased email for identifier. Emails are returned
// without touching the directory; usernames are looked up and fail with
// domain.ErrUserNotFound when unknown.
func (r *IdentifierResolver) Resolve(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if IsEmail(identifier) {
		metrics.IdentifierResolutionsTotal.WithLabelValues("email").Inc()
		return strings.ToLower(identifier), nil
	}

	entry, err := r.directory.FindByUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.IdentifierResolutionsTotal.WithLabelValues("not_found").Inc()
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("resolve username: %w", err)
	}
	if entry.Email == "" {
		metrics.IdentifierResolutionsTotal.WithLabelValues("not_found").Inc()
		return "", domain.ErrUserNotFound
	}

	metrics.IdentifierResolutionsTotal.WithLabelValues("username").Inc()
	return strings.ToLower(entry.Email), nil
}
