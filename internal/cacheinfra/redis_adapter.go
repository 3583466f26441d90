package cacheinfra

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookdata/go-book-catalog/cache"
)

// Interface assertions to keep the adapter honest about its capabilities.
var (
	_ cache.Store         = (*RedisStore)(nil)
	_ cache.PrefixDeleter = (*RedisStore)(nil)
)

// RedisConfig holds the connection settings for the Redis-backed store.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// DB selects the logical Redis database.
	DB int

	// Password authenticates the connection; empty means no auth.
	Password string
}

// Validate checks whether the configuration values are valid.
func (c RedisConfig) Validate() error {
	if c.Addr == "" {
		return &ConfigError{Field: "Addr", Message: "must not be empty"}
	}
	if c.DB < 0 {
		return &ConfigError{Field: "DB", Message: "must be non-negative"}
	}
	return nil
}

// RedisStore is the production cache.Store backed by a network-attached
// Redis server. Every operation is fail-open: connection failures and
// backend errors are logged and absorbed, so callers observe them only as
// misses or dropped writes.
type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed store from the provided
// configuration. The connection is established lazily; use Ping to verify
// reachability at startup.
func NewRedisStore(cfg RedisConfig, logger *slog.Logger) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	return &RedisStore{rdb: rdb, logger: logger}, nil
}

// Get implements cache.Store. Backend failures count as misses.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("cache miss", "key", key)
		return nil, false
	}
	if err != nil {
		s.logger.Warn("cache read failed, treating as miss", "key", key, "error", err)
		return nil, false
	}
	s.logger.Debug("cache hit", "key", key, "bytes", len(raw))
	return raw, true
}

// Set implements cache.Store. Failed writes are dropped.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Warn("cache write dropped", "key", key, "ttl", ttl, "error", err)
		return
	}
	s.logger.Debug("cache write", "key", key, "ttl", ttl)
}

// Delete implements cache.Store. Best-effort.
func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}

// DeleteByPrefix implements cache.PrefixDeleter by scanning the keyspace.
// Best-effort, like Delete.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) {
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("cache scan failed", "prefix", prefix, "error", err)
	}
}

// Ping verifies backend reachability.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
