package usecases_port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

type SearchListingsUseCase interface {
	Execute(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error)
}
