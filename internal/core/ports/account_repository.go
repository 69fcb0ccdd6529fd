package ports

import (
	"context"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// AccountRepository persists the identity provider's own user rows.
// Emails are stored lower-cased; both email and username are unique.
type AccountRepository interface {
	// Create returns domain.ErrUserExists on a duplicate email or username.
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
