package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestSessionStore(t *testing.T, ttl time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := NewRedisSessionStore(client, ttl)
	if err != nil {
		t.Fatalf("NewRedisSessionStore error: %v", err)
	}
	return store, mr
}

func TestSessionStorePutGet(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	rec := SessionRecord{Profile: testProfile(), Token: "tok-1", Signature: "sig-1"}
	if err := store.Put(ctx, "sid-1", rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected record, got nil")
	}
	if got.Token != rec.Token || got.Signature != rec.Signature {
		t.Fatalf("got (%q,%q), want (%q,%q)", got.Token, got.Signature, rec.Token, rec.Signature)
	}
	if got.Profile.Email != rec.Profile.Email || got.Profile.PasswordHash != rec.Profile.PasswordHash {
		t.Fatalf("profile did not round-trip")
	}
}

func TestSessionStoreGetMissing(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)

	got, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil record for unknown session id")
	}
}

func TestSessionStoreOverwriteReplacesWholeRecord(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	first := SessionRecord{Profile: testProfile(), Token: "tok-1", Signature: "sig-1"}
	second := SessionRecord{Profile: testProfile(), Token: "tok-2", Signature: "sig-2"}

	if err := store.Put(ctx, "sid-1", first); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Put(ctx, "sid-1", second); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected record")
	}
	if got.Token != "tok-2" || got.Signature != "sig-2" {
		t.Fatalf("got (%q,%q), want the second triple only", got.Token, got.Signature)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	rec := SessionRecord{Profile: testProfile(), Token: "tok-1", Signature: "sig-1"}
	if err := store.Put(ctx, "sid-1", rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected record to be destroyed")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete (idempotent) error: %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	rec := SessionRecord{Profile: testProfile(), Token: "tok-1", Signature: "sig-1"}
	if err := store.Put(ctx, "sid-1", rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired session to be gone")
	}
}

func TestSessionStoreIsolatesSessionIDs(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "sid-1", SessionRecord{Token: "tok-1", Signature: "sig-1"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Put(ctx, "sid-2", SessionRecord{Token: "tok-2", Signature: "sig-2"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	got, err := store.Get(ctx, "sid-2")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.Token != "tok-2" {
		t.Fatalf("unrelated session was affected")
	}
}
