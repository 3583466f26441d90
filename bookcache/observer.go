package bookcache

import (
	"context"
	"log/slog"

	"github.com/bookdata/go-book-catalog/catalog"
	"github.com/bookdata/go-book-catalog/observer"
)

var _ observer.Observer[catalog.Book] = (*RecentlyViewedObserver)(nil)

// RecentlyViewedObserver is the built-in view listener: every notified view
// is folded into the recently-viewed list. Its cache writes are fail-open,
// so a broken backend costs a tracked view, never a failed read.
type RecentlyViewedObserver struct {
	books  *BookCache
	logger *slog.Logger
}

// NewRecentlyViewedObserver creates the observer over the given cache.
func NewRecentlyViewedObserver(books *BookCache, logger *slog.Logger) *RecentlyViewedObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecentlyViewedObserver{books: books, logger: logger}
}

// Update implements observer.Observer.
func (o *RecentlyViewedObserver) Update(ctx context.Context, book catalog.Book) error {
	o.logger.Debug("recording book view", "book_id", book.ID)
	o.books.UpdateRecentlyViewed(ctx, book)
	return nil
}
