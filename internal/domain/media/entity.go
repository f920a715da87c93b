// internal/domain/media/entity.go
package media

import "time"

// Record describes one stored media asset and its owner. The declared content
// type is validated against the allow-list at creation time only; records are
// never mutated in place.
type Record struct {
	ID          string    `bson:"_id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"-"`
	FileName    string    `bson:"file_name" json:"file_name"`
	StoredName  string    `bson:"stored_name" json:"-"`
	ContentType string    `bson:"content_type" json:"content_type"`
	Size        int64     `bson:"size" json:"size"`
	URL         string    `bson:"url" json:"url"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
