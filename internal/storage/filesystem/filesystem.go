package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediahub-service/internal/config"
)

// Store keeps media objects in a local directory. Keys are generated by the
// caller and never derived from client input, so a key is always a plain
// filename with no separators.
type Store struct {
	basePath   string
	publicBase string
}

func NewStore(cfg *config.MediaConfig) (*Store, error) {
	if cfg == nil || cfg.LocalDir == "" {
		return nil, fmt.Errorf("filesystem media config is incomplete")
	}

	if err := os.MkdirAll(cfg.LocalDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Store{
		basePath:   cfg.LocalDir,
		publicBase: strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/",
	}, nil
}

func (s *Store) path(key string) (string, error) {
	// Keys are system-generated, but reject anything path-like anyway.
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.basePath, key), nil
}

func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	absPath, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.publicBase + key, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	absPath, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			// Already gone - consider this successful
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}
