// Package di wires the catalog service from its collaborators. It manages
// singleton instances of the cache orchestrator, the view subject and the
// cache-aside service so callers assemble the object graph in one place.
package di

import (
	"log/slog"

	"github.com/bookdata/go-book-catalog/bookcache"
	"github.com/bookdata/go-book-catalog/cache"
	"github.com/bookdata/go-book-catalog/catalog"
	"github.com/bookdata/go-book-catalog/internal/cacheinfra"
	"github.com/bookdata/go-book-catalog/observer"
)

// Container holds the wired singletons of the catalog service.
type Container struct {
	store   cache.Store
	codec   cache.Codec
	books   *bookcache.BookCache
	viewed  *observer.Subject[catalog.Book]
	service *bookcache.Service
}

// NewContainer wires the cache orchestrator, the view subject with its
// built-in recently-viewed observer, and the cache-aside service over the
// given store, codec and repository.
func NewContainer(repo catalog.Repository, store cache.Store, codec cache.Codec, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	books := bookcache.NewBookCache(store, codec, logger)
	viewed := observer.NewSubject[catalog.Book](logger,
		bookcache.NewRecentlyViewedObserver(books, logger),
	)

	return &Container{
		store:   store,
		codec:   codec,
		books:   books,
		viewed:  viewed,
		service: bookcache.NewService(repo, books, viewed, logger),
	}
}

// NewContainerWithDefaults wires the container over an in-process memory
// store with the JSON codec. Convenience constructor for tests and local
// runs where no external cache backend is available.
func NewContainerWithDefaults(repo catalog.Repository, logger *slog.Logger) (*Container, error) {
	store, err := cacheinfra.NewMemoryStore(cacheinfra.DefaultMemoryConfig())
	if err != nil {
		return nil, err
	}
	return NewContainer(repo, store, cache.JSONCodec(), logger), nil
}

// Service returns the singleton cache-aside service.
func (c *Container) Service() *bookcache.Service {
	return c.service
}

// BookCache returns the singleton cache orchestrator. Exposed for callers
// that need direct invalidation, such as the seeder.
func (c *Container) BookCache() *bookcache.BookCache {
	return c.books
}

// ViewSubject returns the singleton view subject so additional observers
// can be registered.
func (c *Container) ViewSubject() *observer.Subject[catalog.Book] {
	return c.viewed
}

// Store returns the underlying cache store.
func (c *Container) Store() cache.Store {
	return c.store
}

// Codec returns the codec cache entries are marshaled with.
func (c *Container) Codec() cache.Codec {
	return c.codec
}
