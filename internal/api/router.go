package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roomsense/roomrank/internal/ranking"
	"github.com/roomsense/roomrank/internal/store"
	"github.com/roomsense/roomrank/internal/telemetry"
)

// Config carries the handler settings the router threads through.
type Config struct {
	AdminToken      string
	DefaultDuration time.Duration
}

func NewRouter(s store.Store, tc telemetry.Client, ranker *ranking.Ranker, cfg Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	rank := NewRankingHandler(ranker, tc)
	rooms := NewRoomsHandler(s)
	sensors := NewSensorsHandler(s)
	calendar := NewCalendarHandler(s, tc, cfg.DefaultDuration)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rank", rank.Rank)
		r.Get("/rank/example", rank.Example)
		r.Post("/preferences/evaluate", rank.EvaluatePreferences)

		r.Get("/rooms", rooms.List)
		r.Get("/rooms/{name}", rooms.Get)
		r.Get("/rooms/{name}/sensors", sensors.Averages)
		r.Get("/rooms/{name}/availability", calendar.Availability)

		r.Post("/sensors/readings", sensors.Ingest)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", admin.Stats)
			r.Post("/rooms", rooms.Create)
			r.Post("/calendar/events", calendar.CreateEvent)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
