// internal/domain/media/repository.go
package media

import "context"

type Repository interface {
	Insert(ctx context.Context, r *Record) error

	// ListByOwner returns the caller's records, newest first. The full set is
	// returned in one pass; pagination is a known scalability gap left open
	// deliberately rather than silently capped.
	ListByOwner(ctx context.Context, ownerID string) ([]*Record, error)

	// DeleteOwned removes the record only if it exists AND belongs to ownerID,
	// atomically, and returns the removed record. A missing id and a record
	// owned by someone else are indistinguishable to the caller.
	DeleteOwned(ctx context.Context, ownerID, recordID string) (*Record, error)
}
