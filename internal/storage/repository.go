// Package storage implements the persistent-store boundary of the catalog
// on top of a SQL database via bun.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/bookdata/go-book-catalog/catalog"
)

var _ catalog.Repository = (*BookRepository)(nil)

// BookRepository is the bun-backed implementation of catalog.Repository.
// Filter matching is case-insensitive, mirroring the key canonicalization
// on the cache side.
type BookRepository struct {
	db *bun.DB
}

// NewBookRepository creates a repository over an initialized bun database.
func NewBookRepository(db *bun.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Migrate creates the books table when it does not exist yet.
func (r *BookRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().
		Model((*catalog.Book)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

// FindAll returns one page of the catalog ordered by title.
func (r *BookRepository) FindAll(ctx context.Context, page, size int) ([]catalog.Book, int, error) {
	var books []catalog.Book
	total, err := r.db.NewSelect().
		Model(&books).
		Order("title ASC").
		Limit(size).
		Offset(page * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find all books: %w", err)
	}
	return books, total, nil
}

// FindByGenre returns one page of books whose genre matches,
// case-insensitively.
func (r *BookRepository) FindByGenre(ctx context.Context, genre string, page, size int) ([]catalog.Book, int, error) {
	var books []catalog.Book
	total, err := r.db.NewSelect().
		Model(&books).
		Where("lower(genre) = lower(?)", genre).
		Order("title ASC").
		Limit(size).
		Offset(page * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find books by genre: %w", err)
	}
	return books, total, nil
}

// FindByAuthor returns one page of books whose author matches,
// case-insensitively.
func (r *BookRepository) FindByAuthor(ctx context.Context, author string, page, size int) ([]catalog.Book, int, error) {
	var books []catalog.Book
	total, err := r.db.NewSelect().
		Model(&books).
		Where("lower(author) = lower(?)", author).
		Order("title ASC").
		Limit(size).
		Offset(page * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("find books by author: %w", err)
	}
	return books, total, nil
}

// FindByID returns the record with the given id, or a catalog.NotFoundError
// when no such record exists.
func (r *BookRepository) FindByID(ctx context.Context, id string) (catalog.Book, error) {
	var book catalog.Book
	err := r.db.NewSelect().
		Model(&book).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, &catalog.NotFoundError{ID: id}
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("find book by id: %w", err)
	}
	return book, nil
}

// Exists reports whether the store holds any record at all.
func (r *BookRepository) Exists(ctx context.Context) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*catalog.Book)(nil)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check for records: %w", err)
	}
	return exists, nil
}

// InsertAll persists the given records. Used by the seeder.
func (r *BookRepository) InsertAll(ctx context.Context, books []catalog.Book) error {
	if len(books) == 0 {
		return nil
	}
	if _, err := r.db.NewInsert().Model(&books).Exec(ctx); err != nil {
		return fmt.Errorf("insert books: %w", err)
	}
	return nil
}
