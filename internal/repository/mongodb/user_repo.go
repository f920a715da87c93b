// internal/repository/mongodb/user_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediahub-service/internal/domain/user"
	"mediahub-service/internal/identity"
	xerrors "mediahub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{col: col}
}

// Upsert creates or refreshes the user matched by google_id and returns the
// post-update document.
func (r *UserRepository) Upsert(ctx context.Context, ident *identity.Identity) (*user.User, error) {
	if ident == nil || ident.ProviderUserID == "" {
		return nil, fmt.Errorf("user upsert: identity missing provider user id")
	}

	now := time.Now().UTC()
	filter := bson.M{"google_id": ident.ProviderUserID}
	update := bson.M{
		"$set": bson.M{
			"name":       ident.Name,
			"email":      ident.Email,
			"picture":    ident.Picture,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        ulid.Make().String(),
			"google_id":  ident.ProviderUserID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u user.User
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		return nil, fmt.Errorf("user upsert: %w", err)
	}

	return &u, nil
}

// FindByID retrieves a user by internal id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user find: %w", err)
	}

	return &u, nil
}
