package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookdata/go-book-catalog/catalog"
)

//go:embed seeddata/books.json
var seedData []byte

// Invalidator clears book-related cache entries. The seeder drops stale
// entries a previous run may have left in a shared cache backend.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// Seeder populates an empty store with the bundled sample catalog.
type Seeder struct {
	repo   *BookRepository
	cache  Invalidator
	logger *slog.Logger
}

// NewSeeder creates a seeder. cache may be nil when no invalidation is
// wanted.
func NewSeeder(repo *BookRepository, cache Invalidator, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{repo: repo, cache: cache, logger: logger}
}

// Run seeds the store when, and only when, it holds no records yet.
func (s *Seeder) Run(ctx context.Context) error {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("store already has records, skipping seed")
		return nil
	}

	books, err := SeedBooks()
	if err != nil {
		return err
	}
	if err := s.repo.InsertAll(ctx, books); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}

	s.logger.Info("seeded book catalog", "count", len(books))
	return nil
}

// SeedBooks returns the bundled sample catalog with freshly assigned ids.
func SeedBooks() ([]catalog.Book, error) {
	var books []catalog.Book
	if err := json.Unmarshal(seedData, &books); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}

	for i := range books {
		books[i].ID = uuid.NewString()
		if err := books[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed record %q: %w", books[i].Title, err)
		}
	}
	return books, nil
}
