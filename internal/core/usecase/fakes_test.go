package usecase

import (
	"context"
	"strings"
	"sync"

	"apartment-search-service/internal/core/domain"
)

// Хранилище в памяти для тестов use case'ов. Повторяет контракт
// документного хранилища: без уникальных ограничений и транзакций.
type memListingStore struct {
	mu       sync.Mutex
	listings []domain.Listing

	insertErr  error
	findOneErr error
	findErr    error
	updateErr  error
}

func newMemListingStore(seed ...domain.Listing) *memListingStore {
	return &memListingStore{listings: append([]domain.Listing(nil), seed...)}
}

func matches(l domain.Listing, filter domain.StoreFilter) bool {
	for _, c := range filter.Clauses {
		if !matchesClause(l, c) {
			return false
		}
	}
	return true
}

func matchesClause(l domain.Listing, c domain.FilterClause) bool {
	switch c.Field {
	case "id":
		return l.ID == c.Value.(string)
	case "source":
		return l.Source == c.Value.(string)
	case "external_id":
		return l.ExternalID == c.Value.(string)
	case "address":
		return strings.Contains(strings.ToLower(l.Address), strings.ToLower(c.Value.(string)))
	case "price":
		return matchesInt(l.Price, c)
	case "surface":
		return matchesInt(l.Surface, c)
	case "rooms":
		return matchesInt(l.Rooms, c)
	case "bedrooms":
		return matchesInt(l.Bedrooms, c)
	case "floor":
		return matchesInt(l.Floor, c)
	case "furnished":
		return l.Furnished == c.Value.(bool)
	case "balcony":
		return l.Balcony == c.Value.(bool)
	case "parking":
		return l.Parking == c.Value.(bool)
	case "pets":
		return l.Pets == c.Value.(bool)
	}
	return false
}

func matchesInt(v int, c domain.FilterClause) bool {
	want := c.Value.(int)
	switch c.Op {
	case domain.OpEq:
		return v == want
	case domain.OpGte:
		return v >= want
	case domain.OpLte:
		return v <= want
	}
	return false
}

func (s *memListingStore) Insert(_ context.Context, listing domain.Listing) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append(s.listings, listing)
	return nil
}

func (s *memListingStore) FindOne(_ context.Context, filter domain.StoreFilter) (*domain.Listing, error) {
	if s.findOneErr != nil {
		return nil, s.findOneErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if matches(l, filter) {
			found := l
			return &found, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (s *memListingStore) Find(_ context.Context, filter domain.StoreFilter, limit int) ([]domain.Listing, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Listing
	for _, l := range s.listings {
		if matches(l, filter) {
			out = append(out, l)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memListingStore) UpdateOne(_ context.Context, filter domain.StoreFilter, listing domain.Listing) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listings {
		if matches(l, filter) {
			listing.ID = l.ID
			s.listings[i] = listing
			return nil
		}
	}
	return domain.ErrListingNotFound
}

func (s *memListingStore) DeleteOne(_ context.Context, filter domain.StoreFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listings {
		if matches(l, filter) {
			s.listings = append(s.listings[:i], s.listings[i+1:]...)
			return nil
		}
	}
	return domain.ErrListingNotFound
}

func (s *memListingStore) all() []domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Listing(nil), s.listings...)
}

type memFavoriteStore struct {
	mu   sync.Mutex
	refs []domain.FavoriteRef
}

func (s *memFavoriteStore) Add(_ context.Context, ref domain.FavoriteRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.refs {
		if r.ListingID == ref.ListingID {
			return domain.ErrFavoriteExists
		}
	}
	s.refs = append(s.refs, ref)
	return nil
}

func (s *memFavoriteStore) Remove(_ context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.refs {
		if r.ListingID == listingID {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavoriteNotFound
}

func (s *memFavoriteStore) List(_ context.Context) ([]domain.FavoriteRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FavoriteRef(nil), s.refs...), nil
}
