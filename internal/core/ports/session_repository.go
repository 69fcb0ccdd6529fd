package ports

import (
	"context"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// SessionRepository stores provider sessions keyed by their opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.ProviderSession) error
	// FindByToken returns domain.ErrSessionNotFound for unknown or expired tokens.
	FindByToken(ctx context.Context, token string) (*domain.ProviderSession, error)
	Delete(ctx context.Context, token string) error
}
