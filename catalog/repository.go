package catalog

import "context"

// Repository is the persistent-store boundary the service reads through on
// cache misses. Implementations return the page content together with the
// total matching element count so callers can build a Page envelope.
type Repository interface {
	FindAll(ctx context.Context, page, size int) ([]Book, int, error)
	FindByGenre(ctx context.Context, genre string, page, size int) ([]Book, int, error)
	FindByAuthor(ctx context.Context, author string, page, size int) ([]Book, int, error)
	// FindByID returns a NotFoundError when no record carries the id.
	FindByID(ctx context.Context, id string) (Book, error)
	// Exists reports whether the store holds any record at all. Used by the
	// startup seeder only.
	Exists(ctx context.Context) (bool, error)
}
