package rest

import (
	"errors"
	"net/http"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	addUC    usecases_port.AddFavoriteUseCase
	removeUC usecases_port.RemoveFavoriteUseCase
	listUC   usecases_port.ListFavoritesUseCase
}

func NewFavoriteHandler(
	addUC usecases_port.AddFavoriteUseCase,
	removeUC usecases_port.RemoveFavoriteUseCase,
	listUC usecases_port.ListFavoritesUseCase,
) *FavoriteHandler {
	return &FavoriteHandler{addUC: addUC, removeUC: removeUC, listUC: listUC}
}

// AddFavorite - POST /api/v1/favorites/{listingID}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID := chi.URLParam(r, "listingID")

	err := h.addUC.Execute(r.Context(), listingID)
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusCreated, map[string]string{"listing_id": listingID})
	case errors.Is(err, domain.ErrListingNotFound):
		WriteJSONError(w, http.StatusNotFound, "listing not found")
	case errors.Is(err, domain.ErrFavoriteExists):
		WriteJSONError(w, http.StatusConflict, "listing is already in favorites")
	default:
		logger.Error("Failed to add favorite", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "failed to add favorite")
	}
}

// RemoveFavorite - DELETE /api/v1/favorites/{listingID}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID := chi.URLParam(r, "listingID")

	err := h.removeUC.Execute(r.Context(), listingID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrFavoriteNotFound):
		WriteJSONError(w, http.StatusNotFound, "favorite not found")
	default:
		logger.Error("Failed to remove favorite", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "failed to remove favorite")
	}
}

// ListFavorites - GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	items, err := h.listUC.Execute(r.Context())
	if err != nil {
		logger.Error("Failed to list favorites", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	dtos := make([]FavoriteDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, FavoriteDTO{
			Listing: toListingDTO(item.Listing),
			AddedAt: item.Ref.AddedAt,
		})
	}
	RespondWithJSON(w, http.StatusOK, dtos)
}
