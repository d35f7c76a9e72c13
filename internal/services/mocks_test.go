package services

import (
	"context"
	"sync"
	"time"

	"triplog/internal/models/db_models"
	"triplog/internal/repositories"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type mockDirectoryClient struct {
	mu              sync.Mutex
	textSearchCalls int
	detailCalls     int
	photosCalls     int
	photoCalls      int
	lastToken       string

	textSearchFn func(ctx context.Context, query string) ([]PlaceCandidate, error)
	detailsFn    func(ctx context.Context, placeID, sessionToken string) (*PlaceDetails, error)
	photosFn     func(ctx context.Context, placeID string) ([]PlacePhoto, error)
	photoFn      func(ctx context.Context, photoReference string) (string, error)
}

func (m *mockDirectoryClient) TextSearch(ctx context.Context, query string) ([]PlaceCandidate, error) {
	m.mu.Lock()
	m.textSearchCalls++
	m.mu.Unlock()
	return m.textSearchFn(ctx, query)
}

func (m *mockDirectoryClient) FetchDetails(ctx context.Context, placeID, sessionToken string) (*PlaceDetails, error) {
	m.mu.Lock()
	m.detailCalls++
	m.lastToken = sessionToken
	m.mu.Unlock()
	return m.detailsFn(ctx, placeID, sessionToken)
}

func (m *mockDirectoryClient) FetchPhotos(ctx context.Context, placeID string) ([]PlacePhoto, error) {
	m.mu.Lock()
	m.photosCalls++
	m.mu.Unlock()
	return m.photosFn(ctx, placeID)
}

func (m *mockDirectoryClient) FetchPhotoURL(ctx context.Context, photoReference string) (string, error) {
	m.mu.Lock()
	m.photoCalls++
	m.mu.Unlock()
	return m.photoFn(ctx, photoReference)
}

type mockMediaResolver struct {
	mu    sync.Mutex
	calls int

	fn func(ctx context.Context, mapsURL string) (MediaMetadata, error)
}

func (m *mockMediaResolver) ResolveMedia(ctx context.Context, mapsURL string) (MediaMetadata, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fn(ctx, mapsURL)
}

// mockPlaceCache keeps records in memory and enforces the unique index
// on google_place_id the way the real table does.
type mockPlaceCache struct {
	mu       sync.Mutex
	records  map[string]*db_models.PlaceRecord
	replaced map[uuid.UUID]string
}

func newMockPlaceCache() *mockPlaceCache {
	return &mockPlaceCache{
		records:  make(map[string]*db_models.PlaceRecord),
		replaced: make(map[uuid.UUID]string),
	}
}

func (m *mockPlaceCache) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PlaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockPlaceCache) GetByGooglePlaceID(ctx context.Context, googlePlaceID string) (*db_models.PlaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[googlePlaceID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (m *mockPlaceCache) Create(ctx context.Context, record *db_models.PlaceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[record.GooglePlaceID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	copied := *record
	m.records[record.GooglePlaceID] = &copied
	return nil
}

func (m *mockPlaceCache) ListStale(ctx context.Context, cutoff time.Time) ([]db_models.PlaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stale []db_models.PlaceRecord
	for _, r := range m.records {
		if r.LastCachedAt.Before(cutoff) && len(r.Images) > 0 {
			stale = append(stale, *r)
		}
	}
	return stale, nil
}

func (m *mockPlaceCache) ReplaceImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaced[id] = imageURL
	for _, r := range m.records {
		if r.ID == id {
			r.Images = []string{imageURL}
			r.LastCachedAt = time.Now().UTC()
		}
	}
	return nil
}

func (m *mockPlaceCache) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type mockSessionStore struct {
	token string
}

func (m *mockSessionStore) TokenFor(userID string) string {
	return m.token
}

func (m *mockSessionStore) Peek(userID string) (string, bool) {
	return m.token, m.token != ""
}

type mockResolver struct {
	mu    sync.Mutex
	calls int

	fn func(ctx context.Context, queryText, userID string) (*db_models.PlaceRecord, error)
}

func (m *mockResolver) Resolve(ctx context.Context, queryText, userID string) (*db_models.PlaceRecord, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fn(ctx, queryText, userID)
}

type mockContentRepo struct {
	mu       sync.Mutex
	contents map[uuid.UUID]*db_models.Content
	updates  map[uuid.UUID]repositories.ChannelVectors
	missing  []db_models.Content
}

func newMockContentRepo() *mockContentRepo {
	return &mockContentRepo{
		contents: make(map[uuid.UUID]*db_models.Content),
		updates:  make(map[uuid.UUID]repositories.ChannelVectors),
	}
}

func (m *mockContentRepo) CreateContent(ctx context.Context, content *db_models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	m.contents[content.ID] = content
	return nil
}

func (m *mockContentRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contents[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (m *mockContentRepo) UpdateEmbeddings(ctx context.Context, id uuid.UUID, vectors repositories.ChannelVectors) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[id] = vectors
	return nil
}

func (m *mockContentRepo) ListMissingEmbeddings(ctx context.Context, limit int) ([]db_models.Content, error) {
	if len(m.missing) > limit {
		return m.missing[:limit], nil
	}
	return m.missing, nil
}

type mockPinRepo struct {
	mu   sync.Mutex
	pins []db_models.Pin

	searchFn      func(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]repositories.PinNameMatch, error)
	fallbackFn    func(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]repositories.PinNameMatch, error)
	searchCalls   int
	fallbackCalls int
}

func (m *mockPinRepo) CreatePin(ctx context.Context, pin *db_models.Pin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pin.ID == uuid.Nil {
		pin.ID = uuid.New()
	}
	m.pins = append(m.pins, *pin)
	return nil
}

func (m *mockPinRepo) ListByContentID(ctx context.Context, contentID uuid.UUID) ([]db_models.Pin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db_models.Pin
	for _, p := range m.pins {
		if p.ContentID == contentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPinRepo) SearchNamesInScope(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]repositories.PinNameMatch, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()
	return m.searchFn(ctx, query, scope, limit)
}

func (m *mockPinRepo) SearchNamesInScopeFallback(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]repositories.PinNameMatch, error) {
	m.mu.Lock()
	m.fallbackCalls++
	m.mu.Unlock()
	return m.fallbackFn(ctx, query, scope, limit)
}

type mockSemanticRepo struct {
	fn func(ctx context.Context, vector pgvector.Vector, scope repositories.SearchScope, limit int) ([]repositories.SemanticMatch, error)
}

func (m *mockSemanticRepo) SearchByVector(ctx context.Context, vector pgvector.Vector, scope repositories.SearchScope, limit int) ([]repositories.SemanticMatch, error) {
	return m.fn(ctx, vector, scope, limit)
}

type mockEmbedder struct {
	mu    sync.Mutex
	calls int

	embedFn  func(ctx context.Context, text string) (pgvector.Vector, error)
	embedsFn func(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.embedFn(ctx, text)
}

func (m *mockEmbedder) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.embedsFn(ctx, texts)
}
