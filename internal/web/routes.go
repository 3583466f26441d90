package web

import (
	"log/slog"
	"net/http"
	"time"
)

// NewRouter builds the route table. The literal recently-viewed route takes
// precedence over the {id} wildcard, so "recently-viewed" is never treated
// as a book id.
func NewRouter(h *BookHandler, logger *slog.Logger, timeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/books", h.ListBooks)
	mux.HandleFunc("GET /v1/books/recently-viewed", h.RecentlyViewed)
	mux.HandleFunc("GET /v1/books/{id}", h.GetBook)
	mux.HandleFunc("GET /v1/books/genre/{genre}", h.ListByGenre)
	mux.HandleFunc("GET /v1/books/author/{author}", h.ListByAuthor)

	var handler http.Handler = mux
	if timeout > 0 {
		handler = withDeadline(handler, timeout)
	}
	return withRequestLog(handler, logger)
}
