package usecases_port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

type AddFavoriteUseCase interface {
	Execute(ctx context.Context, listingID string) error
}

type RemoveFavoriteUseCase interface {
	Execute(ctx context.Context, listingID string) error
}

type ListFavoritesUseCase interface {
	Execute(ctx context.Context) ([]domain.FavoriteItem, error)
}
