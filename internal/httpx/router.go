// Package httpx provides the read-only HTTP API served by `adpulse serve`.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsemetrics/adpulse/internal/store"
)

// Bounds for the runs listing: the default floors an absent limit, the
// maximum keeps one request from dragging the whole history into memory.
const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

// Server bundles the HTTP handlers with their dependencies.
type Server struct {
	db      *store.DB
	logger  *slog.Logger
	metrics *Metrics
}

// NewServer creates a Server backed by the given run store.
func NewServer(db *store.DB, logger *slog.Logger, m *Metrics) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{db: db, logger: logger, metrics: m}
}

// Router builds the chi router with middleware, health endpoints,
// the runs API and the Prometheus scrape endpoint.
func (s *Server) Router(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger, s.metrics))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/api/runs", s.handleListRuns)
	r.Get("/api/runs/latest", s.handleLatestRun)
	r.Get("/api/runs/diff", s.handleDiff)
	r.Get("/api/runs/{id}", s.handleGetRun)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if _, err := s.db.LatestRun(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > maxRunsLimit {
			n = maxRunsLimit
		}
		limit = n
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		s.logger.Error("listing runs", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.RunRow{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleLatestRun(w http.ResponseWriter, _ *http.Request) {
	run, err := s.db.LatestRun()
	if err != nil {
		s.logger.Error("loading latest run", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "no runs recorded yet")
		return
	}

	rep, err := run.Report()
	if err != nil {
		s.logger.Error("decoding run payload", slog.Int64("run", run.ID), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "stored run payload is unreadable")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// runDetail is the response shape for a single run, with the child rows
// joined in.
type runDetail struct {
	Run             store.RunRow              `json:"run"`
	Bottlenecks     []store.BottleneckRow     `json:"bottlenecks"`
	Recommendations []store.RecommendationRow `json:"recommendations"`
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "run id must be an integer")
		return
	}

	run, err := s.db.GetRun(id)
	if err != nil {
		s.logger.Error("loading run", slog.Int64("run", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "no such run")
		return
	}

	bottlenecks, err := s.db.RunBottlenecks(id)
	if err != nil {
		s.logger.Error("loading run bottlenecks", slog.Int64("run", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	recs, err := s.db.RunRecommendations(id)
	if err != nil {
		s.logger.Error("loading run recommendations", slog.Int64("run", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	detail := runDetail{Run: *run, Bottlenecks: bottlenecks, Recommendations: recs}
	if detail.Bottlenecks == nil {
		detail.Bottlenecks = []store.BottleneckRow{}
	}
	if detail.Recommendations == nil {
		detail.Recommendations = []store.RecommendationRow{}
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDiff(w http.ResponseWriter, _ *http.Request) {
	diff, err := s.db.Diff()
	if err != nil {
		s.logger.Error("computing run diff", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to compute diff")
		return
	}
	if diff.Current == nil {
		writeError(w, http.StatusNotFound, "no runs recorded yet")
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
