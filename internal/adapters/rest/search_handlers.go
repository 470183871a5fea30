package rest

import (
	"encoding/json"
	"net/http"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchUC usecases_port.SearchListingsUseCase
}

func NewSearchHandler(searchUC usecases_port.SearchListingsUseCase) *SearchHandler {
	return &SearchHandler{searchUC: searchUC}
}

func (h *SearchHandler) Root(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{
		"service": "apartment-search-service",
		"status":  "ok",
	})
}

// Search - POST /api/v1/search. Промах кеша не блокирует ответ:
// клиент сразу получает cached=false и ориентировочные данные.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.searchUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		logger.Error("Search request failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "search failed")
		return
	}

	RespondWithJSON(w, http.StatusOK, SearchResponseDTO{
		Listings: toListingDTOs(result.Listings),
		Total:    result.Total,
		Cached:   result.Cached,
		Message:  result.Message,
	})
}
