package usecases_port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

type GetListingDetailsUseCase interface {
	Execute(ctx context.Context, listingID string) (*domain.Listing, error)
}
