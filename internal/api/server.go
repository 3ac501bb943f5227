// ABOUTME: HTTP JSON API over the nutrition log and its reports.
// ABOUTME: Routes with gorilla/mux, wraps CORS, request IDs and request logging.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Server serves the HTTP API for one repository.
type Server struct {
	repo   storage.Repository
	svc    *report.Service
	logger *log.Logger
	now    func() time.Time
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a Server over repo.
func NewServer(repo storage.Repository, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.svc = report.NewService(repo, report.WithClock(s.now), report.WithLogger(s.logger))
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, s.loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.putProfile).Methods(http.MethodPut)
	api.HandleFunc("/goals", s.getGoals).Methods(http.MethodGet)
	api.HandleFunc("/plans", s.getPlans).Methods(http.MethodGet)
	api.HandleFunc("/streak", s.getStreak).Methods(http.MethodGet)
	api.HandleFunc("/today", s.getToday).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.getDashboard).Methods(http.MethodGet)

	api.HandleFunc("/stats", s.getStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/week", s.getWeekStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/month", s.getMonthStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/buckets", s.getBuckets).Methods(http.MethodGet)
	api.HandleFunc("/trend", s.getTrend).Methods(http.MethodGet)
	api.HandleFunc("/meal-types", s.getMealTypes).Methods(http.MethodGet)
	api.HandleFunc("/macros", s.getMacros).Methods(http.MethodGet)

	api.HandleFunc("/meals", s.listMeals).Methods(http.MethodGet)
	api.HandleFunc("/meals", s.createMeal).Methods(http.MethodPost)
	api.HandleFunc("/meals/{id}", s.deleteMeal).Methods(http.MethodDelete)

	api.HandleFunc("/weights", s.listWeights).Methods(http.MethodGet)
	api.HandleFunc("/weights", s.createWeight).Methods(http.MethodPost)
	api.HandleFunc("/weights/stats", s.getWeightStats).Methods(http.MethodGet)
	api.HandleFunc("/weights/{id}", s.deleteWeight).Methods(http.MethodDelete)

	return r
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	}
}
