package port

import (
	"context"

	"apartment-search-service/internal/core/domain"
)

// ListingStorePort - минимальный контракт документного хранилища объявлений.
// Хранилище не обязано поддерживать транзакции и уникальные ограничения:
// сверка по (source, external_id) - забота прикладного слоя.
type ListingStorePort interface {
	Insert(ctx context.Context, listing domain.Listing) error

	// FindOne возвращает domain.ErrListingNotFound, если ничего не найдено.
	FindOne(ctx context.Context, filter domain.StoreFilter) (*domain.Listing, error)

	Find(ctx context.Context, filter domain.StoreFilter, limit int) ([]domain.Listing, error)

	UpdateOne(ctx context.Context, filter domain.StoreFilter, listing domain.Listing) error

	DeleteOne(ctx context.Context, filter domain.StoreFilter) error
}
