package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/trustbot/internal/logging"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Pinger is the readiness probe dependency; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server serves the supervision endpoints:
//
//	GET  /health, /health/live  200 while the liveness flag is up, else 503
//	GET  /health/ready          200 only when alive AND the store answers ping
//	GET  /metrics               JSON counters
//	GET  /info                  service name, version, start time
//	POST /status/update         {"alive": bool} flips the liveness flag
type Server struct {
	addr   string
	logger logging.Logger
	status *Status
	db     Pinger
}

// NewServer constructs a health Server.
func NewServer(addr string, l logging.Logger, status *Status, db Pinger) *Server {
	return &Server{
		addr:   addr,
		logger: l.With("module", "health_server"),
		status: status,
		db:     db,
	}
}

// Handler builds the chi router. Split out of Run for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleLive)
	r.Get("/health/live", s.handleLive)
	r.Get("/health/ready", s.handleReady)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/info", s.handleInfo)
	r.Post("/status/update", s.handleStatusUpdate)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping health server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting health server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if !s.status.Alive() {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.status.Alive() {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "readiness ping failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "store unreachable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"uptime_seconds": int64(time.Since(s.status.StartedAt()).Seconds()),
		"updates_total":  s.status.Updates(),
		"lookups_total":  s.status.Lookups(),
		"goroutines":     runtime.NumGoroutine(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service":    "trustbot",
		"version":    Version,
		"started_at": s.status.StartedAt().Format(time.RFC3339),
	})
}

func (s *Server) handleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Alive *bool `json:"alive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Alive == nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected {\"alive\": bool}"})
		return
	}
	s.status.SetAlive(*body.Alive)
	s.writeJSON(w, http.StatusOK, map[string]bool{"alive": *body.Alive})
}
