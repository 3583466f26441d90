package catalog

// Page is the pagination envelope returned by every list query. It is also
// the unit stored in the cache, so every field must survive a round-trip
// through serialization. The field names form a persisted wire convention
// shared with any other process reading the same cache.
type Page[T any] struct {
	Content          []T   `json:"content" msgpack:"content"`
	TotalPages       int   `json:"totalPages" msgpack:"totalPages"`
	TotalElements    int64 `json:"totalElements" msgpack:"totalElements"`
	Last             bool  `json:"last" msgpack:"last"`
	First            bool  `json:"first" msgpack:"first"`
	Size             int   `json:"size" msgpack:"size"`
	Number           int   `json:"number" msgpack:"number"`
	NumberOfElements int   `json:"numberOfElements" msgpack:"numberOfElements"`
	Empty            bool  `json:"empty" msgpack:"empty"`
}

// NewPage wraps one page worth of content with its pagination metadata.
// page is zero-based; total is the element count across all pages.
func NewPage[T any](content []T, total, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	return Page[T]{
		Content:          content,
		TotalPages:       totalPages,
		TotalElements:    int64(total),
		Last:             page >= totalPages-1,
		First:            page == 0,
		Size:             size,
		Number:           page,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}

// IsEmpty reports whether the page carries no content.
func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}
