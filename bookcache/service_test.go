package bookcache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bookdata/go-book-catalog/catalog"
	"github.com/bookdata/go-book-catalog/observer"
)

// fakeRepo serves a fixed set of books and counts store accesses so tests
// can verify that cache hits suppress them.
type fakeRepo struct {
	books []catalog.Book
	calls map[string]int
}

func newFakeRepo(books ...catalog.Book) *fakeRepo {
	return &fakeRepo{books: books, calls: map[string]int{}}
}

func (r *fakeRepo) page(matching []catalog.Book, page, size int) ([]catalog.Book, int) {
	start := page * size
	if start >= len(matching) {
		return nil, len(matching)
	}
	end := start + size
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], len(matching)
}

func (r *fakeRepo) FindAll(ctx context.Context, page, size int) ([]catalog.Book, int, error) {
	r.calls["FindAll"]++
	books, total := r.page(r.books, page, size)
	return books, total, nil
}

func (r *fakeRepo) FindByGenre(ctx context.Context, genre string, page, size int) ([]catalog.Book, int, error) {
	r.calls["FindByGenre"]++
	var matching []catalog.Book
	for _, b := range r.books {
		if strings.EqualFold(b.Genre, genre) {
			matching = append(matching, b)
		}
	}
	books, total := r.page(matching, page, size)
	return books, total, nil
}

func (r *fakeRepo) FindByAuthor(ctx context.Context, author string, page, size int) ([]catalog.Book, int, error) {
	r.calls["FindByAuthor"]++
	var matching []catalog.Book
	for _, b := range r.books {
		if strings.EqualFold(b.Author, author) {
			matching = append(matching, b)
		}
	}
	books, total := r.page(matching, page, size)
	return books, total, nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (catalog.Book, error) {
	r.calls["FindByID"]++
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return catalog.Book{}, &catalog.NotFoundError{ID: id}
}

func (r *fakeRepo) Exists(ctx context.Context) (bool, error) {
	return len(r.books) > 0, nil
}

func newTestService(repo catalog.Repository) *Service {
	books := newTestCache(newFakeStore())
	viewed := observer.NewSubject[catalog.Book](testLogger(), NewRecentlyViewedObserver(books, testLogger()))
	return NewService(repo, books, viewed, testLogger())
}

func TestService_GetAllBooks_MissThenHit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(book("1"), book("2"), book("3"))
	svc := newTestService(repo)

	// Empty cache: miss path queries the store and populates the cache.
	first, err := svc.GetAllBooks(ctx, 0, 10)
	if err != nil {
		t.Fatalf("GetAllBooks: %v", err)
	}
	if len(first.Content) != 3 || first.Empty {
		t.Errorf("expected 3 books and empty=false, got %+v", first)
	}
	if repo.calls["FindAll"] != 1 {
		t.Fatalf("store calls = %d, want 1", repo.calls["FindAll"])
	}

	// Identical repeat: cache hit, store not consulted again, same value.
	second, err := svc.GetAllBooks(ctx, 0, 10)
	if err != nil {
		t.Fatalf("GetAllBooks (repeat): %v", err)
	}
	if repo.calls["FindAll"] != 1 {
		t.Errorf("store calls after repeat = %d, want 1", repo.calls["FindAll"])
	}
	if second.TotalElements != first.TotalElements || len(second.Content) != len(first.Content) {
		t.Errorf("cached value differs: %+v vs %+v", second, first)
	}
}

func TestService_FilteredQueries_CacheAside(t *testing.T) {
	ctx := context.Background()
	b1, b2 := book("1"), book("2")
	b1.Genre, b2.Genre = "Fantasy", "Horror"
	repo := newFakeRepo(b1, b2)
	svc := newTestService(repo)

	pg, err := svc.GetBooksByGenre(ctx, "Fantasy", 0, 10)
	if err != nil {
		t.Fatalf("GetBooksByGenre: %v", err)
	}
	if len(pg.Content) != 1 || pg.Content[0].ID != "1" {
		t.Errorf("unexpected genre result: %+v", pg.Content)
	}

	// Case-insensitive repeat hits the canonical key.
	if _, err := svc.GetBooksByGenre(ctx, "fantasy", 0, 10); err != nil {
		t.Fatalf("GetBooksByGenre (lower): %v", err)
	}
	if repo.calls["FindByGenre"] != 1 {
		t.Errorf("FindByGenre calls = %d, want 1", repo.calls["FindByGenre"])
	}

	if _, err := svc.GetBooksByAuthor(ctx, "Author 2", 0, 10); err != nil {
		t.Fatalf("GetBooksByAuthor: %v", err)
	}
	if _, err := svc.GetBooksByAuthor(ctx, "author 2", 0, 10); err != nil {
		t.Fatalf("GetBooksByAuthor (lower): %v", err)
	}
	if repo.calls["FindByAuthor"] != 1 {
		t.Errorf("FindByAuthor calls = %d, want 1", repo.calls["FindByAuthor"])
	}
}

func TestService_GetBookByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	_, err := svc.GetBookByID(ctx, "999")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "999" {
		t.Errorf("expected NotFoundError carrying the id, got %v", err)
	}
}

func TestService_GetBookByID_CacheHitSkipsStoreButStillNotifies(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(book("1"))
	svc := newTestService(repo)

	// First lookup populates the identity key.
	if _, err := svc.GetBookByID(ctx, "1"); err != nil {
		t.Fatalf("GetBookByID: %v", err)
	}
	// Second lookup must be served from cache...
	if _, err := svc.GetBookByID(ctx, "1"); err != nil {
		t.Fatalf("GetBookByID (repeat): %v", err)
	}
	if repo.calls["FindByID"] != 1 {
		t.Errorf("FindByID calls = %d, want 1", repo.calls["FindByID"])
	}

	// ...and both lookups must have been tracked as views.
	list := svc.GetRecentlyViewed(ctx)
	if len(list) != 1 || list[0].ID != "1" {
		t.Errorf("recently viewed = %+v, want the single viewed book", list)
	}
}

func TestService_RecentlyViewed_DedupScenario(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(book("1"), book("2"))
	svc := newTestService(repo)

	// Five views of book 1 interleaved with one view of book 2.
	for _, id := range []string{"1", "1", "2", "1", "1", "1"} {
		if _, err := svc.GetBookByID(ctx, id); err != nil {
			t.Fatalf("GetBookByID(%s): %v", id, err)
		}
	}

	list := svc.GetRecentlyViewed(ctx)
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].ID != "1" || list[1].ID != "2" {
		t.Errorf("list order = [%s, %s], want [1, 2]", list[0].ID, list[1].ID)
	}
}

func TestService_RecentlyViewed_NewViewMovesToFront(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(book("1"), book("2"))
	svc := newTestService(repo)

	// Five views of book 1, then a single view of book 2: the list holds
	// both once, with the latest view first.
	for _, id := range []string{"1", "1", "1", "1", "1", "2"} {
		if _, err := svc.GetBookByID(ctx, id); err != nil {
			t.Fatalf("GetBookByID(%s): %v", id, err)
		}
	}

	list := svc.GetRecentlyViewed(ctx)
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].ID != "2" || list[1].ID != "1" {
		t.Errorf("list order = [%s, %s], want [2, 1]", list[0].ID, list[1].ID)
	}
}

func TestService_GetBookByID_ObserverFailureDoesNotFailRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(book("1"))
	books := newTestCache(newFakeStore())

	// The sole observer fails on every call.
	failing := observer.Func[catalog.Book](func(ctx context.Context, b catalog.Book) error {
		return errors.New("observer always fails")
	})
	viewed := observer.NewSubject[catalog.Book](testLogger(), failing)
	svc := NewService(repo, books, viewed, testLogger())

	got, err := svc.GetBookByID(ctx, "1")
	if err != nil {
		t.Fatalf("read must not fail on observer error: %v", err)
	}
	if got.ID != "1" {
		t.Errorf("resolved book = %+v, want id 1", got)
	}
}
