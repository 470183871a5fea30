package port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

// SourceAdapterPort - один источник объявлений (сайт-агрегатор).
// Scrape возвращает сырых кандидатов; любая внутренняя ошибка адаптера
// должна выйти наружу как error, а не паника.
type SourceAdapterPort interface {
	Name() string
	Scrape(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RawCandidate, error)
}
