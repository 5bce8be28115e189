package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"parking-lot/internal/parking"
)

type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewRouter assembles the full middleware chain and route table. Split out
// from NewServer so handler tests can drive the real routing.
func NewRouter(lot *parking.InstrumentedLot, log zerolog.Logger) chi.Router {
	handler := NewHandler(lot, log)

	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(TracingMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/park", handler.Park)
		r.Post("/exit", handler.Exit)
		r.Get("/search", handler.Search)
		r.Get("/status", handler.Status)
		r.Get("/history", handler.History)
		r.Get("/parked", handler.Parked)
	})

	return r
}

func NewServer(port string, lot *parking.InstrumentedLot, log zerolog.Logger) *Server {
	r := NewRouter(lot, log)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
