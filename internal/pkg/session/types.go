// internal/pkg/session/types.go
package session

import "time"

// Session binds a browser to an authenticated user for a bounded time. A user
// may hold any number of concurrent sessions; the store never deduplicates.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's expiry timestamp has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
