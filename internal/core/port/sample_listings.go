package port

import (
	"apartment-search-service/internal/core/domain"
)

// SampleListingsPort выдает ориентировочные объявления для ответа
// на промах кеша, пока фоновое обновление не завершилось.
type SampleListingsPort interface {
	Listings(criteria domain.SearchCriteria) []domain.Listing
}
