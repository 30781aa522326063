package api

import (
	"meeting-point-service/internal/api/handlers"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Finder      *services.MeetingPointFinder
	History     *services.HistoryService
	Exports     *services.ExportService
	Geocoder    ports.Geocoder
	Logger      zerolog.Logger
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(d.Logger))
	r.Use(middleware.Recoverer)
	if len(d.CORSOrigins) > 0 {
		r.Use(corsMiddleware(d.CORSOrigins))
	}

	mpHandler := &handlers.MeetingPointHandler{Finder: d.Finder}
	locHandler := &handlers.LocationHandler{Geocoder: d.Geocoder}
	historyHandler := &handlers.HistoryHandler{History: d.History}
	exportHandler := &handlers.ExportHandler{Exports: d.Exports}

	r.Get("/health", handlers.Health)

	r.Route("/meeting-points", func(r chi.Router) {
		r.Post("/distance", mpHandler.ByDistance)
		r.Post("/travel-time", mpHandler.ByTravelTime)
	})

	r.Post("/geocode", locHandler.Geocode)
	r.Post("/locations/resolve", locHandler.Resolve)

	r.Route("/history", func(r chi.Router) {
		r.Get("/", historyHandler.List)
		r.Delete("/", historyHandler.Clear)
		r.Get("/suggest", historyHandler.Suggest)
		r.Get("/{id}", historyHandler.Get)
	})

	r.Get("/share", handlers.Share)
	r.Post("/export", exportHandler.Export)

	return r
}
