package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb), mr
}

func newTestSession(t *testing.T, ttl time.Duration) *Session {
	t.Helper()

	id, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID: %v", err)
	}

	now := time.Now()
	return &Session{
		ID:        id,
		UserID:    "user-1",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t, time.Hour)
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", got.UserID, "user-1")
	}
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing session, got %+v", got)
	}
}

func TestStoreCreateRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	sess := newTestSession(t, -time.Minute)
	if err := store.Create(context.Background(), sess); err == nil {
		t.Fatal("expected error creating an already-expired session")
	}
}

func TestStoreLazyExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t, time.Minute)
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Rewrite the stored expiry into the past without touching the Redis TTL,
	// simulating clock drift between TTL and payload.
	sess.ExpiresAt = time.Now().Add(-time.Second)
	data, _ := json.Marshal(sess)
	mr.Set("session:"+sess.ID, string(data))

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatal("expired session should resolve to nil")
	}

	// The expired entry must have been purged on access.
	if mr.Exists("session:" + sess.ID) {
		t.Error("expired session entry was not purged")
	}
}

func TestStoreDeleteThenReplay(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t, time.Hour)
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Replaying the token after logout must look like no session at all,
	// every time.
	for i := 0; i < 3; i++ {
		got, err := store.Get(ctx, sess.ID)
		if err != nil {
			t.Fatalf("Get after delete: %v", err)
		}
		if got != nil {
			t.Fatal("deleted session must not resolve")
		}
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}
