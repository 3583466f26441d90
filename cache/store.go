package cache

import (
	"context"
	"time"
)

// NoExpiry marks an entry that persists until it is overwritten or removed.
const NoExpiry time.Duration = 0

// Store is the key-value cache boundary. Every implementation is fail-open:
// backend trouble is absorbed inside the adapter and observed by callers
// only as a miss or a dropped write, never as an error.
type Store interface {
	// Get returns the raw entry for key, or false when the key is absent or
	// the backend could not be reached.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key. A ttl of NoExpiry keeps the entry until it
	// is overwritten or removed. Failed writes are dropped: the caller
	// already holds the value it computed, so only the hit rate suffers.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes key on a best-effort basis.
	Delete(ctx context.Context, key string)
}

// PrefixDeleter is an optional Store capability for bulk invalidation of a
// key namespace. Adapters that can enumerate keys implement it.
type PrefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string)
}

// Get is the typed read path over a Store. A decode failure counts as a
// miss, matching the store's fail-open contract: a corrupt or reshaped
// entry degrades to a refetch, not an error.
func Get[T any](ctx context.Context, s Store, c Codec, key string) (T, bool) {
	var value T

	raw, ok := s.Get(ctx, key)
	if !ok {
		return value, false
	}
	if err := c.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, false
	}
	return value, true
}

// Put is the typed write path over a Store. Values that fail to marshal are
// dropped like any other failed write.
func Put[T any](ctx context.Context, s Store, c Codec, key string, value T, ttl time.Duration) {
	raw, err := c.Marshal(value)
	if err != nil {
		return
	}
	s.Set(ctx, key, raw, ttl)
}
