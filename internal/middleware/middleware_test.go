package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediahub-service/internal/pkg/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newAuthRouter(t *testing.T) (*gin.Engine, session.Store, *session.CookieCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_, client := newRedisClient(t)
	store := session.NewRedisStore(client)
	codec := session.NewCookieCodec("test-secret", false)
	mw := NewAuthMiddleware(store, codec)

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, MustGetUserID(c))
	})
	router.GET("/open", mw.OptionalAuth(), func(c *gin.Context) {
		if id, ok := GetUserID(c); ok {
			c.String(http.StatusOK, id)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	return router, store, codec
}

func createSession(t *testing.T, store session.Store, userID string) string {
	t.Helper()

	id, err := session.GenerateID()
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	err = store.Create(context.Background(), &session.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func get(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router, store, codec := newAuthRouter(t)
	sessionID := createSession(t, store, "user-1")

	cases := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantBody   string
	}{
		{"no cookie", nil, http.StatusUnauthorized, ""},
		{"valid session", &http.Cookie{Name: session.CookieName, Value: codec.Encode(sessionID)},
			http.StatusOK, "user-1"},
		{"tampered signature", &http.Cookie{Name: session.CookieName, Value: sessionID + ".bogus"},
			http.StatusUnauthorized, ""},
		{"unknown session id", &http.Cookie{Name: session.CookieName, Value: codec.Encode("no-such-session")},
			http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(router, "/protected", tc.cookie)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	router, store, codec := newAuthRouter(t)
	sessionID := createSession(t, store, "user-1")

	rec := get(router, "/open", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Errorf("anonymous: status = %d, body = %q", rec.Code, rec.Body.String())
	}

	rec = get(router, "/open", &http.Cookie{Name: session.CookieName, Value: codec.Encode(sessionID)})
	if rec.Code != http.StatusOK || rec.Body.String() != "user-1" {
		t.Errorf("authenticated: status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimiterBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, client := newRedisClient(t)

	limiter := NewRateLimiter(client, 3, time.Minute)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 1; i <= 3; i++ {
		if rec := get(router, "/", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	if rec := get(router, "/", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request over budget: status = %d, want 429", rec.Code)
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr, client := newRedisClient(t)

	limiter := NewRateLimiter(client, 1, time.Minute)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if rec := get(router, "/", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}
	if rec := get(router, "/", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", rec.Code)
	}

	mr.FastForward(2 * time.Minute)

	if rec := get(router, "/", nil); rec.Code != http.StatusOK {
		t.Fatalf("after window: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr, client := newRedisClient(t)

	limiter := NewRateLimiter(client, 1, time.Minute)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	mr.Close()

	for i := 0; i < 3; i++ {
		if rec := get(router, "/", nil); rec.Code != http.StatusOK {
			t.Fatalf("redis down, request %d: status = %d, want 200", i, rec.Code)
		}
	}
}
