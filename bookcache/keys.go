package bookcache

import (
	"strconv"
	"strings"
)

// Partition namespaces every book-related cache entry. It is part of the
// persisted key convention: other processes reading the same cache address
// entries through the identical prefix, so the value must never change.
const Partition = "3a1c7646-c96c-424f-b90f-10181e536ff2-books"

// KeyType enumerates the query kinds that own a cache key namespace.
type KeyType int

const (
	KeyBookID KeyType = iota
	KeyBookPaged
	KeyBookPagedGenre
	KeyBookPagedAuthor
	KeyRecentlyViewed
)

// prefix maps each query kind to its literal key prefix. The strings are a
// persisted convention shared with every other reader of the cache,
// historical quirks included.
func (k KeyType) prefix() string {
	switch k {
	case KeyBookID:
		return "book-id-"
	case KeyBookPaged:
		return "books-page-size-"
	case KeyBookPagedGenre:
		return "books-page-size-genre-"
	case KeyBookPagedAuthor:
		return "books-page-size-genre-author-"
	case KeyRecentlyViewed:
		return "recentlyViewedBooks"
	}
	return ""
}

// PagedKey derives the cache key for a paged list query. The filter is
// canonicalized to uppercase so that logically identical queries share a
// key regardless of the caller's casing; a blank or all-whitespace filter
// produces the same key as no filter at all.
func PagedKey(kind KeyType, page, size int, filter string) string {
	key := kind.prefix() + strconv.Itoa(page) + "-" + strconv.Itoa(size)
	if strings.TrimSpace(filter) != "" {
		key += "-" + strings.ToUpper(filter)
	}
	return key
}

// IDKey derives the cache key for an identity lookup.
func IDKey(id string) string {
	return KeyBookID.prefix() + id
}

// RecentlyViewedKey returns the single fixed key under which the
// recently-viewed list is stored. There is exactly one list, not one per
// user or session.
func RecentlyViewedKey() string {
	return KeyRecentlyViewed.prefix()
}

// Qualify prepends the shared partition to a logical key, producing the
// string actually sent to the cache backend.
func Qualify(key string) string {
	return Partition + ":" + key
}
