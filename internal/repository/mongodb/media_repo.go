// internal/repository/mongodb/media_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediahub-service/internal/domain/media"
	xerrors "mediahub-service/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaRepository struct {
	col *mongo.Collection
}

func NewMediaRepository(col *mongo.Collection) *MediaRepository {
	return &MediaRepository{col: col}
}

func (r *MediaRepository) Insert(ctx context.Context, m *media.Record) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("media insert: %w", err)
	}

	return nil
}

// ListByOwner returns all records owned by ownerID, newest first.
func (r *MediaRepository) ListByOwner(ctx context.Context, ownerID string) ([]*media.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("media list: %w", err)
	}
	defer cur.Close(ctx)

	records := make([]*media.Record, 0)
	for cur.Next(ctx) {
		var m media.Record
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("media decode: %w", err)
		}
		records = append(records, &m)
	}

	return records, cur.Err()
}

// DeleteOwned atomically removes the record filtered on both id and owner, so
// the store itself cannot tell a missing id from a non-owned record, and two
// concurrent deletes of the same id see exactly one removed document.
func (r *MediaRepository) DeleteOwned(ctx context.Context, ownerID, recordID string) (*media.Record, error) {
	filter := bson.M{"_id": recordID, "owner_id": ownerID}

	var m media.Record
	err := r.col.FindOneAndDelete(ctx, filter).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("media delete: %w", err)
	}

	return &m, nil
}
