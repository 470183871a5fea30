package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"
)

// AddFavoriteUseCase добавляет объявление в избранное.
// Объявление должно существовать в кеше, повторное добавление - ошибка.
type AddFavoriteUseCase struct {
	favorites port.FavoriteStorePort
	listings  port.ListingStorePort
}

func NewAddFavoriteUseCase(favorites port.FavoriteStorePort, listings port.ListingStorePort) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{favorites: favorites, listings: listings}
}

func (uc *AddFavoriteUseCase) Execute(ctx context.Context, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "AddFavorite",
		"listing_id": listingID,
	})

	if _, err := uc.listings.FindOne(ctx, domain.ByID(listingID)); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return domain.ErrListingNotFound
		}
		logger.Error("failed to verify listing before favoriting", err, nil)
		return fmt.Errorf("failed to verify listing %s: %w", listingID, err)
	}

	ref := domain.FavoriteRef{ListingID: listingID, AddedAt: time.Now()}
	if err := uc.favorites.Add(ctx, ref); err != nil {
		if errors.Is(err, domain.ErrFavoriteExists) {
			return domain.ErrFavoriteExists
		}
		logger.Error("failed to add favorite", err, nil)
		return fmt.Errorf("failed to add favorite %s: %w", listingID, err)
	}

	logger.Info("favorite added", nil)
	return nil
}

type RemoveFavoriteUseCase struct {
	favorites port.FavoriteStorePort
}

func NewRemoveFavoriteUseCase(favorites port.FavoriteStorePort) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{favorites: favorites}
}

func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "RemoveFavorite",
		"listing_id": listingID,
	})

	if err := uc.favorites.Remove(ctx, listingID); err != nil {
		if errors.Is(err, domain.ErrFavoriteNotFound) {
			return domain.ErrFavoriteNotFound
		}
		logger.Error("failed to remove favorite", err, nil)
		return fmt.Errorf("failed to remove favorite %s: %w", listingID, err)
	}

	logger.Info("favorite removed", nil)
	return nil
}

// ListFavoritesUseCase отдает избранное вместе с данными объявлений из кеша.
// Ссылка на пропавшее из кеша объявление пропускается, а не валит запрос.
type ListFavoritesUseCase struct {
	favorites port.FavoriteStorePort
	listings  port.ListingStorePort
}

func NewListFavoritesUseCase(favorites port.FavoriteStorePort, listings port.ListingStorePort) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{favorites: favorites, listings: listings}
}

func (uc *ListFavoritesUseCase) Execute(ctx context.Context) ([]domain.FavoriteItem, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListFavorites",
	})

	refs, err := uc.favorites.List(ctx)
	if err != nil {
		logger.Error("failed to list favorites", err, nil)
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	items := make([]domain.FavoriteItem, 0, len(refs))
	for _, ref := range refs {
		listing, err := uc.listings.FindOne(ctx, domain.ByID(ref.ListingID))
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				logger.Warn("favorite points to a listing missing from cache", port.Fields{
					"listing_id": ref.ListingID,
				})
				continue
			}
			logger.Error("failed to resolve favorite listing", err, port.Fields{
				"listing_id": ref.ListingID,
			})
			return nil, fmt.Errorf("failed to resolve favorite %s: %w", ref.ListingID, err)
		}
		items = append(items, domain.FavoriteItem{Listing: *listing, Ref: ref})
	}
	return items, nil
}
