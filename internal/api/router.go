package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server represents the API server.
type Server struct {
	router   *chi.Mux
	handlers *Handlers
	addr     string
	server   *http.Server
}

// NewServer creates a new API server.
func NewServer(handlers *Handlers, addr string) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	// Routes
	r.Route("/api", func(r chi.Router) {
		// Health
		r.Get("/health", handlers.HealthCheck)
		r.Get("/stats", handlers.GetStats)

		// Teams
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", handlers.GetTeams)
			r.Get("/countries", handlers.GetCountries)
			r.Get("/partners", handlers.GetPartnerTeams)
			r.Get("/by-country/{country}", handlers.GetTeamsByCountry)
			r.Get("/{teamID}", handlers.GetTeam)
			r.Get("/{teamID}/matches", handlers.GetTeamMatches)
		})

		// Matches
		r.Route("/matches", func(r chi.Router) {
			r.Get("/{matchID}", handlers.GetMatch)
			r.Get("/{matchID}/events", handlers.GetMatchEvents)
		})

		// Ticker
		r.Route("/ticker", func(r chi.Router) {
			r.Get("/", handlers.GetTickerEntries)
			r.Post("/", handlers.CreateTickerEntry)
			r.Post("/generate/{eventID}", handlers.GenerateForEvent)
			r.Post("/generate-synthetic", handlers.GenerateForSyntheticEvent)
			r.Post("/synthetic", handlers.CreateSyntheticEvent)
			r.Get("/match/{matchID}", handlers.GetMatchTicker)
			r.Get("/match/{matchID}/synthetic", handlers.GetSyntheticEvents)
			r.Get("/match/{matchID}/prematch", handlers.GetPreMatchEntries)
			r.Get("/match/{matchID}/live", handlers.GetLiveEntries)
			r.Get("/{entryID}", handlers.GetTickerEntry)
			r.Patch("/{entryID}", handlers.UpdateTickerEntry)
			r.Post("/{entryID}/publish", handlers.PublishTickerEntry)
		})
	})

	return &Server{
		router:   r,
		handlers: handlers,
		addr:     addr,
	}
}

// Router returns the underlying router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the API server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
