package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campusauth/goSession/persist"
)

func newTestStore(t *testing.T, cfg Config) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := New(client, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, mr
}

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestGetSetDelete(t *testing.T) {
	s, _ := newTestStore(t, Config{})
	ctx := context.Background()

	if _, err := s.Get(ctx, persist.SlotUser); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, persist.SlotUser, []byte(`{"username":"ana"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, persist.SlotUser)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"username":"ana"}` {
		t.Fatalf("got %q", got)
	}

	if err := s.Delete(ctx, persist.SlotUser); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, persist.SlotUser); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.Delete(ctx, persist.SlotUser); err != nil {
		t.Fatalf("deleting absent slot: %v", err)
	}
}

func TestKeyLayoutIsolatesProfiles(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	ana, err := New(client, Config{Profile: "ana"})
	if err != nil {
		t.Fatalf("New ana: %v", err)
	}
	luis, err := New(client, Config{Profile: "luis"})
	if err != nil {
		t.Fatalf("New luis: %v", err)
	}

	if err := ana.Set(ctx, persist.SlotUser, []byte("ana-session")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := luis.Get(ctx, persist.SlotUser); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("profiles leaked into each other: %v", err)
	}

	if !mr.Exists("acadsess:ana:" + persist.SlotUser) {
		t.Fatalf("unexpected key layout; keys: %v", mr.Keys())
	}
}

func TestCustomPrefix(t *testing.T) {
	s, mr := newTestStore(t, Config{Prefix: "campus", Profile: "kiosk7"})

	if err := s.Set(context.Background(), persist.SlotUser, []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("campus:kiosk7:" + persist.SlotUser) {
		t.Fatalf("prefix not applied; keys: %v", mr.Keys())
	}
}

func TestBackupSlotCarriesTTL(t *testing.T) {
	s, mr := newTestStore(t, Config{BackupTTL: 6 * time.Minute})
	ctx := context.Background()

	if err := s.Set(ctx, persist.SlotBackup, []byte("snapshot")); err != nil {
		t.Fatalf("Set backup: %v", err)
	}
	if err := s.Set(ctx, persist.SlotUser, []byte("identity")); err != nil {
		t.Fatalf("Set user: %v", err)
	}

	backupKey := "acadsess:default:" + persist.SlotBackup
	userKey := "acadsess:default:" + persist.SlotUser

	if ttl := mr.TTL(backupKey); ttl != 6*time.Minute {
		t.Fatalf("backup TTL %v, want 6m", ttl)
	}
	if ttl := mr.TTL(userKey); ttl != 0 {
		t.Fatalf("user slot must not expire, got TTL %v", ttl)
	}

	// The stale reload bridge evaporates on its own.
	mr.FastForward(7 * time.Minute)
	if _, err := s.Get(ctx, persist.SlotBackup); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected expired backup, got %v", err)
	}
	if _, err := s.Get(ctx, persist.SlotUser); err != nil {
		t.Fatalf("user slot should survive: %v", err)
	}
}

func TestUnreachableRedisIsUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := New(client, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mr.Close()

	if _, err := s.Get(context.Background(), persist.SlotUser); !errors.Is(err, persist.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := s.Set(context.Background(), persist.SlotUser, []byte("v")); !errors.Is(err, persist.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on Set, got %v", err)
	}
}
