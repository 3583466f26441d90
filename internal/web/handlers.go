// Package web exposes the book catalog over HTTP. The handlers translate
// query parameters and path values into service calls and map the domain
// error taxonomy onto status codes.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bookdata/go-book-catalog/catalog"
)

const (
	defaultPage = 0
	defaultSize = 10
	maxSize     = 100
)

// BookService is the slice of the catalog service the handlers need.
type BookService interface {
	GetAllBooks(ctx context.Context, page, size int) (catalog.Page[catalog.Book], error)
	GetBooksByGenre(ctx context.Context, genre string, page, size int) (catalog.Page[catalog.Book], error)
	GetBooksByAuthor(ctx context.Context, author string, page, size int) (catalog.Page[catalog.Book], error)
	GetBookByID(ctx context.Context, id string) (catalog.Book, error)
	GetRecentlyViewed(ctx context.Context) []catalog.Book
}

// BookHandler serves the /v1/books routes.
type BookHandler struct {
	svc    BookService
	logger *slog.Logger
}

// NewBookHandler creates the handler set over a catalog service.
func NewBookHandler(svc BookService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{svc: svc, logger: logger}
}

// ListBooks handles GET /v1/books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		writeError(w, r, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	pg, err := h.svc.GetAllBooks(r.Context(), page, size)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pg)
}

// ListByGenre handles GET /v1/books/genre/{genre}.
func (h *BookHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		writeError(w, r, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	pg, err := h.svc.GetBooksByGenre(r.Context(), r.PathValue("genre"), page, size)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pg)
}

// ListByAuthor handles GET /v1/books/author/{author}.
func (h *BookHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		writeError(w, r, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	pg, err := h.svc.GetBooksByAuthor(r.Context(), r.PathValue("author"), page, size)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pg)
}

// GetBook handles GET /v1/books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	book, err := h.svc.GetBookByID(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, r, h.logger, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, book)
}

// RecentlyViewed handles GET /v1/books/recently-viewed.
func (h *BookHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.svc.GetRecentlyViewed(r.Context()))
}

func (h *BookHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, r, h.logger, http.StatusInternalServerError, "internal error")
}

// paging parses the page and size query parameters, applying defaults and
// bounds: page >= 0, size in 1..100.
func paging(r *http.Request) (page, size int, err error) {
	page, err = queryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	if page < 0 {
		return 0, 0, fmt.Errorf("page must not be negative, got %d", page)
	}

	size, err = queryInt(r, "size", defaultSize)
	if err != nil {
		return 0, 0, err
	}
	if size < 1 || size > maxSize {
		return 0, 0, fmt.Errorf("size must be between 1 and %d, got %d", maxSize, size)
	}
	return page, size, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
