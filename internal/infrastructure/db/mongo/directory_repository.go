package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// DirectoryRepository is the application's user directory, kept in sync by
// the identity provider's after-create hook.
type DirectoryRepository struct {
	coll *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{coll: db.Collection(directoryCollection)}
}

type directoryDoc struct {
	ID            string `bson:"_id"`
	Email         string `bson:"email"`
	Username      string `bson:"username"`
	Role          string `bson:"role"`
	EmailVerified bool   `bson:"email_verified"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
}

func toDirectoryDoc(e *domain.DirectoryEntry) directoryDoc {
	return directoryDoc{
		ID:            e.ID,
		Email:         e.Email,
		Username:      e.Username,
		Role:          string(e.Role),
		EmailVerified: e.EmailVerified,
		CreatedAt:     e.CreatedAt.UnixMilli(),
		UpdatedAt:     e.UpdatedAt.UnixMilli(),
	}
}

func (d directoryDoc) toDomain() *domain.DirectoryEntry {
	return &domain.DirectoryEntry{
		ID:            d.ID,
		Email:         d.Email,
		Username:      d.Username,
		Role:          domain.ParseRole(d.Role),
		EmailVerified: d.EmailVerified,
		CreatedAt:     millisToTime(d.CreatedAt),
		UpdatedAt:     millisToTime(d.UpdatedAt),
	}
}

func (r *DirectoryRepository) Upsert(ctx context.Context, e *domain.DirectoryEntry) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, toDirectoryDoc(e), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert directory entry: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) FindByUsername(ctx context.Context, username string) (*domain.DirectoryEntry, error) {
	var doc directoryDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find directory entry: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DirectoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *DirectoryRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *DirectoryRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count directory entries: %w", err)
	}
	return n > 0, nil
}
