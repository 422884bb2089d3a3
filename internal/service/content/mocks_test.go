package content

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/internal/service/media"
)

// ---------------------------------------------------------------------------
// Test mocks (minimal, inline)
// ---------------------------------------------------------------------------

type mockStore[T any] struct {
	listPublishedFunc func(ctx context.Context, f domain.ContentFilter, limit int, cursor string) ([]T, string, error)
	listFunc          func(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, limit int) ([]T, error)
	listPageFunc      func(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, page, perPage int) (domain.Page[T], error)
	countFunc         func(ctx context.Context, f domain.ContentFilter) (int, error)
	getByIDFunc       func(ctx context.Context, id int64) (T, error)
	getForUpdateFunc  func(ctx context.Context, id int64) (T, error)
	existsFunc        func(ctx context.Context, column string, value any, excludeID int64) (bool, error)
	insertFunc        func(ctx context.Context, item T) (T, error)
	updateFunc        func(ctx context.Context, id int64, item T) (T, error)
	setPublishedFunc  func(ctx context.Context, id int64, published bool) (T, error)
	deleteFunc        func(ctx context.Context, id int64) (bool, error)
}

func (m *mockStore[T]) ListPublished(ctx context.Context, f domain.ContentFilter, limit int, cursor string) ([]T, string, error) {
	if m.listPublishedFunc != nil {
		return m.listPublishedFunc(ctx, f, limit, cursor)
	}
	return []T{}, "", nil
}

func (m *mockStore[T]) List(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, limit int) ([]T, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f, order, limit)
	}
	return []T{}, nil
}

func (m *mockStore[T]) ListPage(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, page, perPage int) (domain.Page[T], error) {
	if m.listPageFunc != nil {
		return m.listPageFunc(ctx, f, order, page, perPage)
	}
	return domain.EmptyPage[T](perPage), nil
}

func (m *mockStore[T]) Count(ctx context.Context, f domain.ContentFilter) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, f)
	}
	return 0, nil
}

func (m *mockStore[T]) GetByID(ctx context.Context, id int64) (T, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	var zero T
	return zero, domain.ErrNotFound
}

// GetByIDForUpdate falls back to getByIDFunc so tests that only care about
// the row contents need a single stub.
func (m *mockStore[T]) GetByIDForUpdate(ctx context.Context, id int64) (T, error) {
	if m.getForUpdateFunc != nil {
		return m.getForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockStore[T]) Exists(ctx context.Context, column string, value any, excludeID int64) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, column, value, excludeID)
	}
	return false, nil
}

func (m *mockStore[T]) Insert(ctx context.Context, item T) (T, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, item)
	}
	return item, nil
}

func (m *mockStore[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, item)
	}
	return item, nil
}

func (m *mockStore[T]) SetPublished(ctx context.Context, id int64, published bool) (T, error) {
	if m.setPublishedFunc != nil {
		return m.setPublishedFunc(ctx, id, published)
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (m *mockStore[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

type mockBookStore struct {
	mockStore[domain.Book]
	getByIDOrSlugFunc func(ctx context.Context, idOrSlug string) (domain.Book, error)
	listPreviewsFunc  func(ctx context.Context, limit int) ([]domain.Book, error)
	slugsFunc         func(ctx context.Context) ([]string, error)
}

func (m *mockBookStore) GetByIDOrSlug(ctx context.Context, idOrSlug string) (domain.Book, error) {
	if m.getByIDOrSlugFunc != nil {
		return m.getByIDOrSlugFunc(ctx, idOrSlug)
	}
	return domain.Book{}, domain.ErrNotFound
}

func (m *mockBookStore) ListPreviews(ctx context.Context, limit int) ([]domain.Book, error) {
	if m.listPreviewsFunc != nil {
		return m.listPreviewsFunc(ctx, limit)
	}
	return []domain.Book{}, nil
}

func (m *mockBookStore) Slugs(ctx context.Context) ([]string, error) {
	if m.slugsFunc != nil {
		return m.slugsFunc(ctx)
	}
	return nil, nil
}

type mockReadingStore struct {
	listFunc       func(ctx context.Context, limit, offset int) ([]domain.ReadingListItem, error)
	listPageFunc   func(ctx context.Context, page, perPage int) (domain.Page[domain.ReadingListItem], error)
	insertFunc     func(ctx context.Context, bookID int64, note string) (domain.ReadingListEntry, error)
	updateNoteFunc func(ctx context.Context, id int64, note string) (domain.ReadingListEntry, error)
	deleteFunc     func(ctx context.Context, id int64) (bool, error)
}

func (m *mockReadingStore) List(ctx context.Context, limit, offset int) ([]domain.ReadingListItem, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return []domain.ReadingListItem{}, nil
}

func (m *mockReadingStore) ListPage(ctx context.Context, page, perPage int) (domain.Page[domain.ReadingListItem], error) {
	if m.listPageFunc != nil {
		return m.listPageFunc(ctx, page, perPage)
	}
	return domain.EmptyPage[domain.ReadingListItem](perPage), nil
}

func (m *mockReadingStore) Count(context.Context) (int, error) { return 0, nil }

func (m *mockReadingStore) Insert(ctx context.Context, bookID int64, note string) (domain.ReadingListEntry, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, bookID, note)
	}
	return domain.ReadingListEntry{ID: 1, BookID: bookID, ReadingNote: note}, nil
}

func (m *mockReadingStore) UpdateNote(ctx context.Context, id int64, note string) (domain.ReadingListEntry, error) {
	if m.updateNoteFunc != nil {
		return m.updateNoteFunc(ctx, id, note)
	}
	return domain.ReadingListEntry{ID: id, ReadingNote: note}, nil
}

func (m *mockReadingStore) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

type mockSettingStore struct {
	getFunc    func(ctx context.Context, key string) (domain.SiteSetting, error)
	upsertFunc func(ctx context.Context, key, value string) (domain.SiteSetting, error)
}

func (m *mockSettingStore) Get(ctx context.Context, key string) (domain.SiteSetting, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return domain.SiteSetting{}, domain.ErrNotFound
}

func (m *mockSettingStore) Upsert(ctx context.Context, key, value string) (domain.SiteSetting, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, key, value)
	}
	return domain.SiteSetting{Key: key, Value: value}, nil
}

// fakeMedia keeps uploaded blobs in memory so tests can check which refs
// are still alive.
type fakeMedia struct {
	mu        sync.Mutex
	seq       int
	live      map[string]bool
	deleted   []string
	uploadErr error
}

func newFakeMedia(existing ...string) *fakeMedia {
	m := &fakeMedia{live: map[string]bool{}}
	for _, ref := range existing {
		m.live[ref] = true
	}
	return m
}

func (m *fakeMedia) Upload(_ context.Context, in media.UploadInput) (domain.StoredMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return domain.StoredMedia{}, m.uploadErr
	}
	m.seq++
	ref := "pg:new-" + strconv.Itoa(m.seq)
	m.live[ref] = true
	return domain.StoredMedia{
		URL:        "/media/" + string(in.Kind) + "/new-" + strconv.Itoa(m.seq) + "/" + in.Filename,
		StorageRef: ref,
		Filename:   in.Filename,
	}, nil
}

func (m *fakeMedia) DeleteQuietly(_ context.Context, ref string) {
	if ref == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, ref)
	m.deleted = append(m.deleted, ref)
}

func (m *fakeMedia) alive(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live[ref]
}

func (m *fakeMedia) deletedRefs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

type mockCatalog struct {
	searchFunc func(ctx context.Context, query string, limit int) []domain.CatalogBook
}

func (m *mockCatalog) Search(ctx context.Context, query string, limit int) []domain.CatalogBook {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return []domain.CatalogBook{}
}

type mockAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	counts  map[domain.AuditAction]int
}

func (m *mockAudit) Log(_ context.Context, entry domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAudit) CountByAction(_ context.Context, action domain.AuditAction) (int, error) {
	return m.counts[action], nil
}

func (m *mockAudit) logged() []domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditEntry(nil), m.entries...)
}

type mockTx struct{}

type inTxKey struct{}

func (mockTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

// inTx reports whether ctx came from mockTx.RunInTx.
func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(inTxKey{}).(bool)
	return v
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	books    *mockBookStore
	reading  *mockReadingStore
	gallery  *mockStore[domain.GalleryItem]
	music    *mockStore[domain.MusicLink]
	notes    *mockStore[domain.NoteEntry]
	certs    *mockStore[domain.Certification]
	research *mockStore[domain.ResearchItem]
	settings *mockSettingStore
	media    *fakeMedia
	catalog  *mockCatalog
	audit    *mockAudit
}

func newFixture() *fixture {
	return &fixture{
		books:    &mockBookStore{},
		reading:  &mockReadingStore{},
		gallery:  &mockStore[domain.GalleryItem]{},
		music:    &mockStore[domain.MusicLink]{},
		notes:    &mockStore[domain.NoteEntry]{},
		certs:    &mockStore[domain.Certification]{},
		research: &mockStore[domain.ResearchItem]{},
		settings: &mockSettingStore{},
		media:    newFakeMedia(),
		catalog:  &mockCatalog{},
		audit:    &mockAudit{counts: map[domain.AuditAction]int{}},
	}
}

func (f *fixture) service() *Service {
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stores{
			Books:          f.books,
			Reading:        f.reading,
			Gallery:        f.gallery,
			Music:          f.music,
			Notes:          f.notes,
			Certifications: f.certs,
			Research:       f.research,
			Settings:       f.settings,
		},
		f.media,
		f.catalog,
		f.audit,
		mockTx{},
	)
}
