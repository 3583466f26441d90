package bookcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bookdata/go-book-catalog/cache"
	"github.com/bookdata/go-book-catalog/catalog"
)

const (
	// DefaultTTL applies to identity lookups and unfiltered page entries.
	DefaultTTL = time.Hour

	// ShortTTL applies to genre- and author-filtered page entries. Filtered
	// result sets churn more, so their staleness tolerance is lower.
	ShortTTL = 10 * time.Minute

	// RecentlyViewedCapacity bounds the recently-viewed list. The entry
	// itself carries no TTL; eviction is purely size-based.
	RecentlyViewedCapacity = 10
)

// BookCache composes the cache store, the key convention and the TTL policy
// into cache-shaped accessors for each book query kind. It has no knowledge
// of the persistent store; the service layer decides when to fall back.
type BookCache struct {
	store  cache.Store
	codec  cache.Codec
	logger *slog.Logger

	// written tracks every key this process has stored, for registry-based
	// invalidation when the backend cannot enumerate its keyspace.
	written *xsync.MapOf[string, struct{}]
}

// NewBookCache creates the orchestrator over the given store and codec.
func NewBookCache(store cache.Store, codec cache.Codec, logger *slog.Logger) *BookCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookCache{
		store:   store,
		codec:   codec,
		logger:  logger,
		written: xsync.NewMapOf[string, struct{}](),
	}
}

// GetAll returns the cached envelope for an unfiltered page query.
func (c *BookCache) GetAll(ctx context.Context, page, size int) (catalog.Page[catalog.Book], bool) {
	return c.getPage(ctx, PagedKey(KeyBookPaged, page, size, ""))
}

// GetByGenre returns the cached envelope for a genre-filtered page query.
func (c *BookCache) GetByGenre(ctx context.Context, genre string, page, size int) (catalog.Page[catalog.Book], bool) {
	return c.getPage(ctx, PagedKey(KeyBookPagedGenre, page, size, genre))
}

// GetByAuthor returns the cached envelope for an author-filtered page query.
func (c *BookCache) GetByAuthor(ctx context.Context, author string, page, size int) (catalog.Page[catalog.Book], bool) {
	return c.getPage(ctx, PagedKey(KeyBookPagedAuthor, page, size, author))
}

// GetBook returns the cached record for an identity lookup.
func (c *BookCache) GetBook(ctx context.Context, id string) (catalog.Book, bool) {
	return cache.Get[catalog.Book](ctx, c.store, c.codec, Qualify(IDKey(id)))
}

// PutAll stores an unfiltered page envelope under the default TTL.
func (c *BookCache) PutAll(ctx context.Context, page, size int, pg catalog.Page[catalog.Book]) {
	c.putPage(ctx, PagedKey(KeyBookPaged, page, size, ""), pg, DefaultTTL)
}

// PutByGenre stores a genre-filtered page envelope under the short TTL.
func (c *BookCache) PutByGenre(ctx context.Context, genre string, page, size int, pg catalog.Page[catalog.Book]) {
	c.putPage(ctx, PagedKey(KeyBookPagedGenre, page, size, genre), pg, ShortTTL)
}

// PutByAuthor stores an author-filtered page envelope under the short TTL.
func (c *BookCache) PutByAuthor(ctx context.Context, author string, page, size int, pg catalog.Page[catalog.Book]) {
	c.putPage(ctx, PagedKey(KeyBookPagedAuthor, page, size, author), pg, ShortTTL)
}

// PutBook stores a record under its identity key with the default TTL.
func (c *BookCache) PutBook(ctx context.Context, book catalog.Book) {
	key := Qualify(IDKey(book.ID))
	cache.Put(ctx, c.store, c.codec, key, book, DefaultTTL)
	c.written.Store(key, struct{}{})
}

// UpdateRecentlyViewed records a view of book in the bounded,
// deduplicated, most-recent-first list and returns the resulting list.
//
// The read-modify-write is deliberately unsynchronized: concurrent views
// can each read the same prior state and the later write wins, losing the
// other view. That weak-consistency trade-off is accepted; callers needing
// stronger guarantees must serialize around this method or move the update
// into a backend-side atomic primitive.
func (c *BookCache) UpdateRecentlyViewed(ctx context.Context, book catalog.Book) []catalog.Book {
	key := Qualify(RecentlyViewedKey())

	// A failed read degrades to an empty list; the write below still
	// happens so the freshest view is never lost to a cache hiccup.
	current, _ := cache.Get[[]catalog.Book](ctx, c.store, c.codec, key)

	updated := make([]catalog.Book, 0, len(current)+1)
	updated = append(updated, book)
	for _, b := range current {
		if b.ID != book.ID {
			updated = append(updated, b)
		}
	}
	if len(updated) > RecentlyViewedCapacity {
		updated = updated[:RecentlyViewedCapacity]
	}

	cache.Put(ctx, c.store, c.codec, key, updated, cache.NoExpiry)
	c.written.Store(key, struct{}{})

	return updated
}

// GetRecentlyViewed returns the recently-viewed list, most recent first.
// An absent or unreadable entry yields an empty list, never an error.
func (c *BookCache) GetRecentlyViewed(ctx context.Context) []catalog.Book {
	list, ok := cache.Get[[]catalog.Book](ctx, c.store, c.codec, Qualify(RecentlyViewedKey()))
	if !ok || list == nil {
		return []catalog.Book{}
	}
	return list
}

// InvalidateAll drops every book-related entry. When the store can delete
// by prefix the whole partition is cleared; otherwise only keys written by
// this process are removed.
func (c *BookCache) InvalidateAll(ctx context.Context) {
	if pd, ok := c.store.(cache.PrefixDeleter); ok {
		pd.DeleteByPrefix(ctx, Partition+":")
	} else {
		c.written.Range(func(key string, _ struct{}) bool {
			c.store.Delete(ctx, key)
			return true
		})
	}
	c.written.Clear()
	c.logger.Info("book cache invalidated")
}

func (c *BookCache) getPage(ctx context.Context, key string) (catalog.Page[catalog.Book], bool) {
	return cache.Get[catalog.Page[catalog.Book]](ctx, c.store, c.codec, Qualify(key))
}

func (c *BookCache) putPage(ctx context.Context, key string, pg catalog.Page[catalog.Book], ttl time.Duration) {
	qualified := Qualify(key)
	cache.Put(ctx, c.store, c.codec, qualified, pg, ttl)
	c.written.Store(qualified, struct{}{})
}
