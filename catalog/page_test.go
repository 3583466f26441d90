package catalog

import (
	"encoding/json"
	"testing"
)

func TestNewPage_Metadata(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		total      int
		page       int
		size       int
		totalPages int
		first      bool
		last       bool
		empty      bool
	}{
		{name: "first of many", count: 10, total: 25, page: 0, size: 10, totalPages: 3, first: true, last: false, empty: false},
		{name: "middle page", count: 10, total: 25, page: 1, size: 10, totalPages: 3, first: false, last: false, empty: false},
		{name: "last partial page", count: 5, total: 25, page: 2, size: 10, totalPages: 3, first: false, last: true, empty: false},
		{name: "single page", count: 3, total: 3, page: 0, size: 10, totalPages: 1, first: true, last: true, empty: false},
		{name: "no results", count: 0, total: 0, page: 0, size: 10, totalPages: 0, first: true, last: true, empty: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := make([]Book, tc.count)
			p := NewPage(content, tc.total, tc.page, tc.size)

			if p.TotalPages != tc.totalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.totalPages)
			}
			if p.TotalElements != int64(tc.total) {
				t.Errorf("TotalElements = %d, want %d", p.TotalElements, tc.total)
			}
			if p.First != tc.first {
				t.Errorf("First = %v, want %v", p.First, tc.first)
			}
			if p.Last != tc.last {
				t.Errorf("Last = %v, want %v", p.Last, tc.last)
			}
			if p.Empty != tc.empty {
				t.Errorf("Empty = %v, want %v", p.Empty, tc.empty)
			}
			if p.NumberOfElements != tc.count {
				t.Errorf("NumberOfElements = %d, want %d", p.NumberOfElements, tc.count)
			}
			if p.Number != tc.page {
				t.Errorf("Number = %d, want %d", p.Number, tc.page)
			}
			if p.Size != tc.size {
				t.Errorf("Size = %d, want %d", p.Size, tc.size)
			}
			if p.Empty != p.IsEmpty() {
				t.Errorf("Empty flag %v disagrees with IsEmpty() %v", p.Empty, p.IsEmpty())
			}
		})
	}
}

func TestNewPage_NilContentBecomesEmptySlice(t *testing.T) {
	p := NewPage[Book](nil, 0, 0, 10)
	if p.Content == nil {
		t.Fatal("Content should never be nil")
	}
	if !p.Empty {
		t.Error("page built from nil content should be empty")
	}
}

func TestPage_JSONShape(t *testing.T) {
	p := NewPage([]Book{{ID: "1", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction"}}, 1, 0, 10)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Every field of the persisted shape must be present, including the
	// false booleans and zero counters.
	for _, field := range []string{
		"content", "totalPages", "totalElements", "last", "first",
		"size", "number", "numberOfElements", "empty",
	} {
		if _, ok := raw[field]; !ok {
			t.Errorf("serialized page is missing field %q", field)
		}
	}

	var back Page[Book]
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if back.TotalElements != p.TotalElements || back.NumberOfElements != p.NumberOfElements {
		t.Errorf("round-trip lost metadata: got %+v want %+v", back, p)
	}
	if len(back.Content) != 1 || back.Content[0].Title != "Dune" {
		t.Errorf("round-trip lost content: %+v", back.Content)
	}
}
