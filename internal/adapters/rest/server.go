package rest

import (
	"context"
	"net/http"

	core_port "apartment-search-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	searchHandlers *SearchHandler,
	listingHandlers *ListingHandler,
	favoriteHandlers *FavoriteHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/", searchHandlers.Root)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", searchHandlers.Search)

		r.Get("/listings/{listingID}", listingHandlers.GetListingDetails)

		r.Get("/favorites", favoriteHandlers.ListFavorites)
		r.Post("/favorites/{listingID}", favoriteHandlers.AddFavorite)
		r.Delete("/favorites/{listingID}", favoriteHandlers.RemoveFavorite)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
