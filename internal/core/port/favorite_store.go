package port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

// FavoriteStorePort - хранилище избранных объявлений.
type FavoriteStorePort interface {
	// Add возвращает domain.ErrFavoriteExists при повторном добавлении.
	Add(ctx context.Context, ref domain.FavoriteRef) error

	// Remove возвращает domain.ErrFavoriteNotFound, если записи нет.
	Remove(ctx context.Context, listingID string) error

	List(ctx context.Context) ([]domain.FavoriteRef, error)
}
