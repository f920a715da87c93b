package factory

import (
	"fmt"

	"mediahub-service/internal/config"
	"mediahub-service/internal/storage"
	"mediahub-service/internal/storage/filesystem"
	"mediahub-service/internal/storage/s3"
)

// NewBlobStore builds the configured blob backend.
func NewBlobStore(cfg *config.MediaConfig) (storage.BlobStore, error) {
	switch cfg.Driver {
	case "s3":
		return s3.NewStore(cfg)
	case "filesystem":
		return filesystem.NewStore(cfg)
	default:
		return nil, fmt.Errorf("unknown media storage driver %q", cfg.Driver)
	}
}
