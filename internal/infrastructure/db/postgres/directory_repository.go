package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// DirectoryRepository reads and writes the users table.
type DirectoryRepository struct {
	db *sql.DB
}

func NewDirectoryRepository(db *sql.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

const upsertUser = `
INSERT INTO users (id, email, username, role, email_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	email = EXCLUDED.email,
	username = EXCLUDED.username,
	role = EXCLUDED.role,
	email_verified = EXCLUDED.email_verified,
	updated_at = EXCLUDED.updated_at`

func (r *DirectoryRepository) Upsert(ctx context.Context, e *domain.DirectoryEntry) error {
	_, err := r.db.ExecContext(ctx, upsertUser,
		e.ID, e.Email, e.Username, string(e.Role), e.EmailVerified, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) FindByUsername(ctx context.Context, username string) (*domain.DirectoryEntry, error) {
	const q = `SELECT id, email, username, role, email_verified, created_at, updated_at FROM users WHERE username = $1`

	var (
		e    domain.DirectoryEntry
		role string
	)
	err := r.db.QueryRowContext(ctx, q, username).
		Scan(&e.ID, &e.Email, &e.Username, &role, &e.EmailVerified, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	e.Role = domain.ParseRole(role)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func (r *DirectoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *DirectoryRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *DirectoryRepository) exists(ctx context.Context, q, arg string) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return ok, nil
}
