package storage

import "context"

// BlobStore is the durable byte storage behind media records. Implementations
// address objects by key; the public URL stored on a record is derived from
// the configured public base URL plus the key.
type BlobStore interface {
	// Put writes the object and returns its public URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
