package usecase

import (
	"context"
	"errors"
	"fmt"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"
)

type GetListingDetailsUseCase struct {
	store port.ListingStorePort
}

func NewGetListingDetailsUseCase(store port.ListingStorePort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{store: store}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, listingID string) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": listingID,
	})

	listing, err := uc.store.FindOne(ctx, domain.ByID(listingID))
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			logger.Debug("listing not found in cache", nil)
			return nil, domain.ErrListingNotFound
		}
		logger.Error("failed to fetch listing details", err, nil)
		return nil, fmt.Errorf("failed to fetch listing %s: %w", listingID, err)
	}
	return listing, nil
}
