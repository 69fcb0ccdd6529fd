package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// AccountRepository stores identity provider credentials.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID            string `bson:"_id"`
	Email         string `bson:"email"`
	Username      string `bson:"username"`
	Name          string `bson:"name"`
	EmailVerified bool   `bson:"email_verified"`
	Role          string `bson:"role"`
	PasswordHash  string `bson:"password_hash"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:            a.ID,
		Email:         a.Email,
		Username:      a.Username,
		Name:          a.Name,
		EmailVerified: a.EmailVerified,
		Role:          string(a.Role),
		PasswordHash:  a.PasswordHash,
		CreatedAt:     a.CreatedAt.UnixMilli(),
		UpdatedAt:     a.UpdatedAt.UnixMilli(),
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:            d.ID,
		Email:         d.Email,
		Username:      d.Username,
		Name:          d.Name,
		EmailVerified: d.EmailVerified,
		Role:          domain.ParseRole(d.Role),
		PasswordHash:  d.PasswordHash,
		CreatedAt:     millisToTime(d.CreatedAt),
		UpdatedAt:     millisToTime(d.UpdatedAt),
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	if _, err := r.coll.InsertOne(ctx, toAccountDoc(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
