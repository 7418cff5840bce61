package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"live-sports-service/internal/http/handlers"
	"live-sports-service/internal/http/middleware"
	"live-sports-service/internal/metrics"
)

// NewRouter registers the API routes with CORS, request-ID, logging and
// metrics middleware applied.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder, corsOrigins []string) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(logger, recorder))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/api/live", h.Live)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	return r
}
