// Package cache defines the key-value cache boundary used by the book
// catalog, together with typed helpers and value codecs.
//
// # Overview
//
// The package exports:
//
//   - Store: the byte-oriented cache port implemented by the backend
//     adapters in internal/cacheinfra (Redis for production, an in-memory
//     store for tests and local development)
//   - Codec: pluggable value serialization (JSON by default, msgpack as a
//     compact alternative)
//   - Get/Put: generic helpers that marshal through a Codec on top of a
//     Store
//
// # Fail-open contract
//
// Store implementations never surface backend trouble to callers. A read
// against an unreachable backend is a miss; a write against an unreachable
// backend is dropped; a Delete is best-effort. The same applies to value
// problems: an entry that no longer unmarshals into the requested type is
// treated as a miss by Get. Cache failures degrade the hit rate, never the
// response. The source of truth for every cached value is the persistent
// store, so the worst outcome of a broken cache is extra load, not wrong
// data.
//
// # Basic usage
//
//	store, _ := cacheinfra.NewRedisStore(cfg, logger)
//	codec := cache.JSONCodec()
//
//	cache.Put(ctx, store, codec, "book-id-42", book, time.Hour)
//	book, ok := cache.Get[catalog.Book](ctx, store, codec, "book-id-42")
//
// A ttl of NoExpiry keeps an entry until it is overwritten or removed; the
// recently-viewed list relies on this, since it is bounded by size rather
// than by time.
package cache
