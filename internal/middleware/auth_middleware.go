// internal/middleware/auth_middleware.go
package middleware

import (
	"mediahub-service/internal/pkg/response"
	"mediahub-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxSessionID = "session_id"
)

// AuthMiddleware is the authorization gate applied before media operations.
// It resolves the session cookie to a principal, or to nothing at all: an
// expired, logged-out, or tampered session is indistinguishable from no
// session.
type AuthMiddleware struct {
	store session.Store
	codec *session.CookieCodec
}

func NewAuthMiddleware(store session.Store, codec *session.CookieCodec) *AuthMiddleware {
	return &AuthMiddleware{store: store, codec: codec}
}

// resolve looks up the principal for the request, degrading to ("", "", false)
// rather than erroring - the route policy decides what anonymous means.
func (m *AuthMiddleware) resolve(c *gin.Context) (userID, sessionID string, ok bool) {
	sessionID, ok = m.codec.SessionIDFromRequest(c.Request)
	if !ok {
		return "", "", false
	}

	sess, err := m.store.Get(c.Request.Context(), sessionID)
	if err != nil || sess == nil {
		return "", "", false
	}

	return sess.UserID, sessionID, true
}

// RequireAuth aborts with 401 when no valid session resolves. All media
// endpoints sit behind it.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := m.resolve(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxSessionID, sessionID)
		c.Next()
	}
}

// OptionalAuth resolves the principal when present but never aborts. Used by
// current-user, which answers anonymous callers with isAuthenticated=false.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, sessionID, ok := m.resolve(c); ok {
			c.Set(ctxUserID, userID)
			c.Set(ctxSessionID, sessionID)
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}

	id, ok := v.(string)
	return id, ok
}

// GetSessionID returns the resolved session id from the request context.
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxSessionID)
	if !exists {
		return "", false
	}

	id, ok := v.(string)
	return id, ok
}

// MustGetUserID gets the user id from context or panics. Only valid behind
// RequireAuth.
func MustGetUserID(c *gin.Context) string {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id not found in context")
	}
	return id
}
