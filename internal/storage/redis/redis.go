// Package redis stores save slots as Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/save"
)

// Client is the subset of redis.UniversalClient the store uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// NewClient creates a client for cfg. Redis connects lazily; use Ping to
// check reachability.
//
// Precondition: cfg.Addr must be non-empty.
func NewClient(cfg config.RedisConfig) (Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: addr is required")
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// Store is a save.Store keeping each slot under keyPrefix+slot.
type Store struct {
	client    Client
	keyPrefix string
}

// NewStore wraps client.
func NewStore(client Client, keyPrefix string) *Store {
	return &Store{client: client, keyPrefix: keyPrefix}
}

func (s *Store) key(slot string) string {
	return s.keyPrefix + slot
}

// Save replaces the value at the slot key.
func (s *Store) Save(ctx context.Context, slot string, c *character.Character) error {
	data, err := save.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: saving slot %q: %w", save.ErrIO, slot, err)
	}
	return nil
}

// Load reads and decodes the slot key.
//
// Postcondition: a missing key yields save.ErrSlotEmpty.
func (s *Store) Load(ctx context.Context, slot string) (*character.Character, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %q", save.ErrSlotEmpty, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading slot %q: %w", save.ErrIO, slot, err)
	}
	return save.Unmarshal(data)
}

// Slots lists the slots under the key prefix in order.
func (s *Store) Slots(ctx context.Context) ([]string, error) {
	var slots []string
	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		slots = append(slots, strings.TrimPrefix(iter.Val(), s.keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing slots: %w", save.ErrIO, err)
	}
	sort.Strings(slots)
	return slots, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
