package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds transport settings for Routes.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Routes builds the HTTP surface.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(h.RequestLogger)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", h.Metrics())
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticate)

		r.Route("/playerstats", func(r chi.Router) {
			r.Get("/", h.ListPlayerStats)
			r.Post("/", h.CreatePlayerStats)
			r.Put("/", h.UpdatePlayerStats)
			r.With(h.RequireAuth).Delete("/", h.DeletePlayerStats)
			r.Get("/match/{matchId}", h.GetPlayerStatsByMatch)
			r.Get("/{steamId}", h.GetPlayerStatsBySteamID)
		})

		r.Route("/ranks", func(r chi.Router) {
			r.Get("/", h.ListRanks)
			r.Get("/season/{seasonId}", h.GetSeasonRanks)
			r.Get("/{steamId}", h.GetPlayerRank)
			r.With(h.RequireAuth).Delete("/{steamId}", h.ResetPlayerRanks)
			r.Get("/{steamId}/seasons", h.GetPlayerSeasons)
			r.Get("/{steamId}/season/{seasonId}", h.GetPlayerSeasonRank)
			r.Put("/{steamId}/season/{seasonId}", h.ApplyRankDelta)
		})

		r.With(h.RequireAuth).Post("/system/install", h.InstallDatabase)
	})

	return r
}
