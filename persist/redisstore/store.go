// Package redisstore provides a persist.Store on Redis for shared-kiosk
// deployments, where the console process is ephemeral but the operator's
// session snapshot should survive it on the shared host.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusauth/goSession/persist"
)

const defaultPrefix = "acadsess"

// Store persists slots under <prefix>:<profile>:<slot>. The backup slot
// carries a TTL slightly above the reconciler's freshness window so stale
// reload bridges evaporate on their own.
type Store struct {
	client    redis.UniversalClient
	prefix    string
	profile   string
	backupTTL time.Duration
}

// Config configures a redis-backed store.
type Config struct {
	// Prefix namespaces all keys; defaults to "acadsess".
	Prefix string
	// Profile isolates operators sharing one Redis (defaults to "default").
	Profile string
	// BackupTTL bounds the backup slot's lifetime. Zero disables the TTL.
	BackupTTL time.Duration
}

// New returns a store on the given client.
func New(client redis.UniversalClient, cfg Config) (*Store, error) {
	if client == nil {
		return nil, errors.New("redisstore: client is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	return &Store{
		client:    client,
		prefix:    cfg.Prefix,
		profile:   cfg.Profile,
		backupTTL: cfg.BackupTTL,
	}, nil
}

func (s *Store) key(slot string) string {
	return s.prefix + ":" + s.profile + ":" + slot
}

// Get implements persist.Store.
func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return data, nil
}

// Set implements persist.Store.
func (s *Store) Set(ctx context.Context, slot string, value []byte) error {
	var ttl time.Duration
	if slot == persist.SlotBackup {
		ttl = s.backupTTL
	}
	if err := s.client.Set(ctx, s.key(slot), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return nil
}

// Delete implements persist.Store.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("%w: %v", persist.ErrUnavailable, err)
	}
	return nil
}
