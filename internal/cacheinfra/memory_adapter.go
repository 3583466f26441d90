package cacheinfra

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/bookdata/go-book-catalog/cache"
)

var (
	_ cache.Store         = (*MemoryStore)(nil)
	_ cache.PrefixDeleter = (*MemoryStore)(nil)
)

// MemoryConfig holds the settings for the in-memory sturdyc-backed store.
type MemoryConfig struct {
	// Capacity is the maximum number of entries the cache can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards controls sharding for concurrent access.
	// Must be greater than 0.
	NumShards int

	// TTL is the client-wide retention bound sturdyc applies to every
	// entry it holds. Per-entry TTLs shorter than this are enforced by the
	// adapter itself; entries written with cache.NoExpiry are still
	// subject to this bound, since sturdyc cannot hold an entry forever.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache is
	// full. Must be between 1 and 100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultMemoryConfig returns a MemoryConfig suitable for tests and local
// development.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// MemoryStore is an in-process cache.Store backed by a sturdyc client. It
// exists for tests and single-node development setups; production uses the
// Redis adapter so the cache outlives the process and is shared between
// instances.
//
// sturdyc expires entries on a client-wide schedule, so each entry carries
// its own deadline and reads treat a passed deadline as a miss. That keeps
// per-entry TTLs observable here the same way the Redis adapter enforces
// them.
type MemoryStore struct {
	client *sturdyc.Client[memoryEntry]
}

// memoryEntry wraps the cached bytes with the entry's own deadline. A zero
// deadline means no expiry beyond the client-wide retention bound.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryStore creates an in-memory store from the provided
// configuration.
func NewMemoryStore(cfg MemoryConfig) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[memoryEntry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		opts...,
	)

	return &MemoryStore{client: client}, nil
}

// Get implements cache.Store. An entry past its own deadline counts as a
// miss and is dropped.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok := s.client.Get(key)
	if !ok {
		return nil, false
	}
	if entry.expired(time.Now()) {
		s.client.Delete(key)
		return nil, false
	}
	return entry.data, true
}

// Set implements cache.Store. A ttl of cache.NoExpiry stores the entry
// without a deadline of its own; it then lives until the client-wide
// retention bound evicts it.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	entry := memoryEntry{data: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.client.Set(key, entry)
}

// Delete implements cache.Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) {
	s.client.Delete(key)
}

// DeleteByPrefix implements cache.PrefixDeleter.
func (s *MemoryStore) DeleteByPrefix(ctx context.Context, prefix string) {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
}
