package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"apartment-search-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu       sync.Mutex
	criteria []domain.SearchCriteria
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, criteria domain.SearchCriteria, _ uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.criteria = append(d.criteria, criteria)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.criteria)
}

type stubSamples struct{ listings []domain.Listing }

func (s *stubSamples) Listings(_ domain.SearchCriteria) []domain.Listing {
	return s.listings
}

func TestSearchCacheHitReturnsCachedWithoutDispatch(t *testing.T) {
	store := newMemListingStore(
		domain.Listing{ID: "1", Address: "Rue de Rivoli, Paris", Price: 1200, Surface: 45, Rooms: 2},
		domain.Listing{ID: "2", Address: "Rue Mouffetard, Paris", Price: 900, Surface: 30, Rooms: 1},
	)
	dispatcher := &recordingDispatcher{}
	uc := NewSearchListingsUseCase(store, dispatcher, &stubSamples{})

	result, err := uc.Execute(context.Background(), domain.SearchCriteria{
		Location: "Paris",
		MinPrice: 1000,
		MaxPrice: 1500,
		Rooms:    2,
	})

	require.NoError(t, err)
	assert.True(t, result.Cached)
	require.Len(t, result.Listings, 1, "filter must exclude the 900€ one-room listing")
	assert.Equal(t, "1", result.Listings[0].ID)
	assert.Equal(t, 1, result.Total)
	assert.Empty(t, result.Message)
	assert.Equal(t, 0, dispatcher.count(), "cache hit must not trigger a refresh")
}

func TestSearchCacheMissDispatchesAndReturnsPlaceholder(t *testing.T) {
	store := newMemListingStore()
	dispatcher := &recordingDispatcher{}
	placeholder := []domain.Listing{{ID: "sample-1"}, {ID: "sample-2"}}
	uc := NewSearchListingsUseCase(store, dispatcher, &stubSamples{listings: placeholder})

	result, err := uc.Execute(context.Background(), domain.SearchCriteria{Location: "Lyon"})

	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, placeholder, result.Listings)
	assert.Equal(t, 2, result.Total)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, 1, dispatcher.count())
}

func TestSearchIdenticalMissesDispatchOnce(t *testing.T) {
	store := newMemListingStore()
	dispatcher := &recordingDispatcher{}
	uc := NewSearchListingsUseCase(store, dispatcher, &stubSamples{})
	ctx := context.Background()

	criteria := domain.SearchCriteria{Location: "Lyon", MaxPrice: 1000}
	_, err := uc.Execute(ctx, criteria)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, criteria)
	require.NoError(t, err)

	assert.Equal(t, 1, dispatcher.count(), "in-flight refresh must deduplicate identical criteria")

	// Другие критерии - отдельная задача
	_, err = uc.Execute(ctx, domain.SearchCriteria{Location: "Lille"})
	require.NoError(t, err)
	assert.Equal(t, 2, dispatcher.count())
}

func TestSearchDispatchFailureStillAnswers(t *testing.T) {
	store := newMemListingStore()
	dispatcher := &recordingDispatcher{err: errors.New("broker down")}
	uc := NewSearchListingsUseCase(store, dispatcher, &stubSamples{listings: []domain.Listing{{ID: "sample-1"}}})

	result, err := uc.Execute(context.Background(), domain.SearchCriteria{Location: "Lyon"})

	require.NoError(t, err, "dispatch failure must not fail the search")
	assert.False(t, result.Cached)
	require.Len(t, result.Listings, 1)
}

func TestSearchDispatchFailureReleasesGuard(t *testing.T) {
	store := newMemListingStore()
	dispatcher := &recordingDispatcher{err: errors.New("broker down")}
	uc := NewSearchListingsUseCase(store, dispatcher, &stubSamples{})
	ctx := context.Background()

	criteria := domain.SearchCriteria{Location: "Lyon"}
	_, err := uc.Execute(ctx, criteria)
	require.NoError(t, err)

	// Брокер ожил: те же критерии снова должны дойти до диспетчера
	dispatcher.err = nil
	_, err = uc.Execute(ctx, criteria)
	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.count())
}

func TestSearchStoreFailureIsAnError(t *testing.T) {
	store := newMemListingStore()
	store.findErr = errors.New("connection refused")
	uc := NewSearchListingsUseCase(store, &recordingDispatcher{}, &stubSamples{})

	_, err := uc.Execute(context.Background(), domain.SearchCriteria{})

	require.Error(t, err)
}
