package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearchUC struct {
	gotCriteria domain.SearchCriteria
	result      *domain.SearchResult
	err         error
}

func (s *stubSearchUC) Execute(_ context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	s.gotCriteria = criteria
	return s.result, s.err
}

type stubDetailsUC struct {
	listing *domain.Listing
	err     error
}

func (s *stubDetailsUC) Execute(_ context.Context, _ string) (*domain.Listing, error) {
	return s.listing, s.err
}

type stubFavoritesUC struct {
	addErr    error
	removeErr error
	items     []domain.FavoriteItem
	listErr   error
}

func (s *stubFavoritesUC) Execute(_ context.Context, _ string) error { return s.addErr }

type stubRemoveUC struct{ err error }

func (s *stubRemoveUC) Execute(_ context.Context, _ string) error { return s.err }

type stubListUC struct {
	items []domain.FavoriteItem
	err   error
}

func (s *stubListUC) Execute(_ context.Context) ([]domain.FavoriteItem, error) {
	return s.items, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (nopLogger) Debug(string, port.Fields)        {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

func newTestServer(search *stubSearchUC, details *stubDetailsUC, add *stubFavoritesUC, remove *stubRemoveUC, list *stubListUC) http.Handler {
	if search == nil {
		search = &stubSearchUC{result: &domain.SearchResult{}}
	}
	if details == nil {
		details = &stubDetailsUC{}
	}
	if add == nil {
		add = &stubFavoritesUC{}
	}
	if remove == nil {
		remove = &stubRemoveUC{}
	}
	if list == nil {
		list = &stubListUC{}
	}
	srv := NewServer("0",
		NewSearchHandler(search),
		NewListingHandler(details),
		NewFavoriteHandler(add, remove, list),
		nopLogger{})
	return srv.httpServer.Handler
}

func TestSearchEndpoint(t *testing.T) {
	search := &stubSearchUC{result: &domain.SearchResult{
		Listings: []domain.Listing{{ID: "1", Title: "T2 Paris", Price: 1200}},
		Total:    1,
		Cached:   true,
	}}
	handler := newTestServer(search, nil, nil, nil, nil)

	body := `{"location":"Paris","min_price":1000,"max_price":1500,"rooms":2,"furnished":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Paris", search.gotCriteria.Location)
	assert.Equal(t, 1000, search.gotCriteria.MinPrice)
	require.NotNil(t, search.gotCriteria.Furnished)
	assert.True(t, *search.gotCriteria.Furnished)

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, "T2 Paris", resp.Listings[0].Title)
}

func TestSearchEndpointBadBody(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointUseCaseFailure(t *testing.T) {
	handler := newTestServer(&stubSearchUC{err: errors.New("store down")}, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetListingDetails(t *testing.T) {
	details := &stubDetailsUC{listing: &domain.Listing{ID: "abc", Title: "Studio"}}
	handler := newTestServer(nil, details, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dto ListingDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "abc", dto.ID)
}

func TestGetListingDetailsNotFound(t *testing.T) {
	handler := newTestServer(nil, &stubDetailsUC{err: domain.ErrListingNotFound}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddFavoriteStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"created", nil, http.StatusCreated},
		{"unknown listing", domain.ErrListingNotFound, http.StatusNotFound},
		{"duplicate", domain.ErrFavoriteExists, http.StatusConflict},
		{"store failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(nil, nil, &stubFavoritesUC{addErr: tt.err}, nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/l1", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRemoveFavoriteStatusCodes(t *testing.T) {
	handler := newTestServer(nil, nil, nil, &stubRemoveUC{}, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/l1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	handler = newTestServer(nil, nil, nil, &stubRemoveUC{err: domain.ErrFavoriteNotFound}, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/l1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFavorites(t *testing.T) {
	list := &stubListUC{items: []domain.FavoriteItem{
		{Listing: domain.Listing{ID: "l1", Title: "T2 Paris"}},
	}}
	handler := newTestServer(nil, nil, nil, nil, list)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dtos []FavoriteDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "l1", dtos[0].Listing.ID)
}
