package rest

import (
	"errors"
	"net/http"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	detailsUC usecases_port.GetListingDetailsUseCase
}

func NewListingHandler(detailsUC usecases_port.GetListingDetailsUseCase) *ListingHandler {
	return &ListingHandler{detailsUC: detailsUC}
}

// GetListingDetails - GET /api/v1/listings/{listingID}
func (h *ListingHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	listingID := chi.URLParam(r, "listingID")
	if listingID == "" {
		WriteJSONError(w, http.StatusBadRequest, "listing id is required")
		return
	}

	listing, err := h.detailsUC.Execute(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "listing not found")
			return
		}
		logger.Error("Failed to get listing details", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "failed to get listing details")
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingDTO(*listing))
}
