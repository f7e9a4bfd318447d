// Package api exposes the coach and streak tracker over HTTP for mobile
// clients. One request maps to one user action; there is no retry, queuing,
// or request coalescing server-side.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chris/unhook/internal/coach"
	"github.com/chris/unhook/internal/db"
	"github.com/chris/unhook/internal/streak"
)

type Server struct {
	coach   *coach.Coach
	tracker *streak.Tracker
	db      *db.DB
	loc     *time.Location
	logger  *slog.Logger
}

func NewServer(c *coach.Coach, tracker *streak.Tracker, database *db.DB, loc *time.Location, logger *slog.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	return &Server{coach: c, tracker: tracker, db: database, loc: loc, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/urge", s.handleUrge)
		r.Post("/hobbies", s.handleHobbies)
		r.Get("/streak", s.handleStreak)
		r.Get("/stats", s.handleStats)
		r.Get("/history", s.handleHistory)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
