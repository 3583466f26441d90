package bookcache

import (
	"context"
	"log/slog"

	"github.com/bookdata/go-book-catalog/catalog"
	"github.com/bookdata/go-book-catalog/observer"
)

// Service implements the cache-aside read path for the book catalog: every
// query consults the cache first and falls back to the persistent store on
// a miss, populating the cache before returning. Identity lookups
// additionally publish a view event for every successful resolution,
// whether it came from the cache or the store — the notification observes
// access, not storage.
type Service struct {
	repo   catalog.Repository
	books  *BookCache
	viewed *observer.Subject[catalog.Book]
	logger *slog.Logger
}

// NewService wires the cache-aside service from its collaborators.
func NewService(repo catalog.Repository, books *BookCache, viewed *observer.Subject[catalog.Book], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, books: books, viewed: viewed, logger: logger}
}

// GetAllBooks returns one page of the full catalog.
func (s *Service) GetAllBooks(ctx context.Context, page, size int) (catalog.Page[catalog.Book], error) {
	if pg, ok := s.books.GetAll(ctx, page, size); ok {
		return pg, nil
	}

	books, total, err := s.repo.FindAll(ctx, page, size)
	if err != nil {
		return catalog.Page[catalog.Book]{}, err
	}

	pg := catalog.NewPage(books, total, page, size)
	s.books.PutAll(ctx, page, size, pg)
	return pg, nil
}

// GetBooksByGenre returns one page of books matching genre,
// case-insensitively.
func (s *Service) GetBooksByGenre(ctx context.Context, genre string, page, size int) (catalog.Page[catalog.Book], error) {
	if pg, ok := s.books.GetByGenre(ctx, genre, page, size); ok {
		return pg, nil
	}

	books, total, err := s.repo.FindByGenre(ctx, genre, page, size)
	if err != nil {
		return catalog.Page[catalog.Book]{}, err
	}

	pg := catalog.NewPage(books, total, page, size)
	s.books.PutByGenre(ctx, genre, page, size, pg)
	return pg, nil
}

// GetBooksByAuthor returns one page of books matching author,
// case-insensitively.
func (s *Service) GetBooksByAuthor(ctx context.Context, author string, page, size int) (catalog.Page[catalog.Book], error) {
	if pg, ok := s.books.GetByAuthor(ctx, author, page, size); ok {
		return pg, nil
	}

	books, total, err := s.repo.FindByAuthor(ctx, author, page, size)
	if err != nil {
		return catalog.Page[catalog.Book]{}, err
	}

	pg := catalog.NewPage(books, total, page, size)
	s.books.PutByAuthor(ctx, author, page, size, pg)
	return pg, nil
}

// GetBookByID resolves a single record. A store miss after a cache miss is
// the one error that surfaces to the caller, as a catalog.NotFoundError.
// Every successful resolution is published to the view subject before the
// record is returned.
func (s *Service) GetBookByID(ctx context.Context, id string) (catalog.Book, error) {
	book, ok := s.books.GetBook(ctx, id)
	if !ok {
		var err error
		book, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return catalog.Book{}, err
		}
		s.books.PutBook(ctx, book)
	}

	s.viewed.Notify(ctx, book)
	return book, nil
}

// GetRecentlyViewed returns the bounded most-recent-first list of viewed
// books. Never errors; an empty history yields an empty list.
func (s *Service) GetRecentlyViewed(ctx context.Context) []catalog.Book {
	return s.books.GetRecentlyViewed(ctx)
}
