package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JasVita/wealthpilot-portal/internal/api/handlers"
	custommiddleware "github.com/JasVita/wealthpilot-portal/internal/api/middleware"
	"github.com/JasVita/wealthpilot-portal/internal/config"
	"github.com/JasVita/wealthpilot-portal/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	assetService *service.AssetService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.RecoverEnvelope)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/assets", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(assetService)
			r.Get("/cash", assetHandler.Cash)
			r.Post("/cash", assetHandler.CashPost)
			r.Get("/cash/export", assetHandler.Export)
			r.Get("/holdings", assetHandler.Holdings)
			r.Get("/months", assetHandler.Months)

			r.Route("/snapshots", func(r chi.Router) {
				snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
				r.Get("/", snapshotHandler.List)
				r.With(custommiddleware.ValidateUUIDMiddleware).Get("/{uuid}", snapshotHandler.Get)
			})
		})
	})

	return r
}
