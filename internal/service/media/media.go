// internal/service/media/media.go
package media

import (
	"context"
	"fmt"
	"time"

	"mediahub-service/internal/domain/media"
	xerrors "mediahub-service/internal/pkg/errors"
	"mediahub-service/internal/storage"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// MaxFileSize is the upload ceiling.
const MaxFileSize = 10 << 20 // 10 MiB

// allowedTypes is the fixed content-type allow-list. Matching is exact: near
// matches and wildcards are rejected.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

// MediaService runs the upload validation pipeline and the owner-scoped
// create/list/delete operations over the metadata store and the blob store.
type MediaService struct {
	repo   media.Repository
	blobs  storage.BlobStore
	logger *zap.Logger
}

func NewMediaService(repo media.Repository, blobs storage.BlobStore, logger *zap.Logger) *MediaService {
	return &MediaService{repo: repo, blobs: blobs, logger: logger}
}

// Validate checks the declared content type and size of an upload before any
// bytes are accepted. It returns a *xerrors.Rejection with a stable reason
// code on failure.
func Validate(contentType string, size int64) error {
	if _, ok := allowedTypes[contentType]; !ok {
		return xerrors.NewRejection(
			xerrors.CodeUnsupportedType,
			"Invalid file type. Only images and videos are allowed.",
		)
	}

	if size > MaxFileSize {
		return xerrors.NewRejection(
			xerrors.CodeTooLarge,
			"File exceeds the 10 MB upload limit.",
		)
	}

	return nil
}

// Create writes the blob, then the metadata record. The stored object key is
// system-generated and independent of the client filename. If the metadata
// insert fails the blob is removed again so no record ever references a
// missing blob and no blob is reachable without a record.
func (s *MediaService) Create(ctx context.Context, ownerID string, up *media.Upload) (*media.Record, error) {
	if err := Validate(up.ContentType, up.Size); err != nil {
		return nil, err
	}

	key := uuid.New().String() + allowedTypes[up.ContentType]

	url, err := s.blobs.Put(ctx, key, up.ContentType, up.Data)
	if err != nil {
		s.logger.Error("blob write failed",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: blob write", xerrors.ErrStorageFailure)
	}

	record := &media.Record{
		ID:          ulid.Make().String(),
		OwnerID:     ownerID,
		FileName:    up.FileName,
		StoredName:  key,
		ContentType: up.ContentType,
		Size:        up.Size,
		URL:         url,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		// Compensate: the half-written blob must not outlive the failed insert.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Error("orphaned blob after failed metadata insert",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		s.logger.Error("metadata insert failed",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: metadata insert", xerrors.ErrStorageFailure)
	}

	return record, nil
}

// List returns the caller's records, newest first.
func (s *MediaService) List(ctx context.Context, ownerID string) ([]*media.Record, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list", xerrors.ErrStorageFailure)
	}
	return records, nil
}

// Delete removes the record and then its blob. A missing id and a record
// owned by another user both surface as xerrors.ErrNotFound. A blob-delete
// failure after the metadata row is gone leaves an orphan; it is logged for
// reconciliation, never retried synchronously.
func (s *MediaService) Delete(ctx context.Context, ownerID, recordID string) error {
	record, err := s.repo.DeleteOwned(ctx, ownerID, recordID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrNotFound
		}
		return fmt.Errorf("%w: delete", xerrors.ErrStorageFailure)
	}

	if err := s.blobs.Delete(ctx, record.StoredName); err != nil {
		s.logger.Error("orphaned blob after metadata delete",
			zap.String("key", record.StoredName),
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
	}

	return nil
}
