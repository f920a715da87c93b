// internal/domain/user/entity.go
package user

import "time"

// User is an authenticated principal recognized by the system. It is created
// on first successful Google login and refreshed on subsequent logins when the
// provider returns changed profile values. Users are never deleted here.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	GoogleID  string    `bson:"google_id" json:"-"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Picture   string    `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
