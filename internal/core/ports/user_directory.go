package ports

import (
	"context"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// UserDirectory is the denormalized user store used for username lookups
// and availability checks. The identity provider keeps it in sync.
type UserDirectory interface {
	Upsert(ctx context.Context, entry *domain.DirectoryEntry) error
	// FindByUsername returns domain.ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*domain.DirectoryEntry, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
