// Package bookcache is the cache-aside orchestration layer of the book
// catalog.
//
// # Overview
//
// The package owns everything with real invariants in this system:
//
//   - the persisted cache key convention (keys.go): per-kind prefixes, the
//     shared partition, uppercase filter canonicalization
//   - BookCache: per-query-kind accessors with the TTL policy (one hour
//     for identity and unfiltered pages, ten minutes for filtered pages,
//     size-bound-only eviction for the recently-viewed list)
//   - Service: the cache-aside algorithm over the persistent store
//   - RecentlyViewedObserver: the built-in view listener feeding the
//     bounded recently-viewed list
//
// # Read path
//
// A cache hit is the cheapest possible path: the envelope is returned
// verbatim with no store access and no cache write. On a miss the service
// queries the persistent store for the exact page, wraps it into a
// catalog.Page, writes it back under the same key and returns it. Two
// concurrent misses for one key may both query the store and both write;
// last write wins, which is acceptable because writes for the same query
// are idempotent.
//
// Identity lookups publish the resolved book to the view subject on every
// success, cached or not. Observer failures are isolated by the subject and
// never corrupt the response.
//
// # Recently-viewed list
//
// The list is a single cache entry without TTL, capacity ten, most recent
// first, deduplicated by id. Updates are an unsynchronized
// read-modify-write; see BookCache.UpdateRecentlyViewed for the accepted
// race.
package bookcache
