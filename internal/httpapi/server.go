package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/httpapi/middleware"
	"github.com/upwatch/watchtower/internal/repo"
	"github.com/upwatch/watchtower/internal/stats"
)

// Trigger is the on-demand entry point into the batch-check logic; the
// scheduler's timer tick calls the same method.
type Trigger interface {
	RunDueChecks(ctx context.Context)
}

// Checker runs one monitor check immediately, used for first-check
// feedback when a monitor is registered.
type Checker interface {
	CheckMonitor(ctx context.Context, m *domain.Monitor) (*domain.CheckResult, error)
}

type Server struct {
	Logger   *zap.Logger
	Monitors repo.MonitorStore
	Stats    *stats.Service
	Trigger  Trigger
	Checker  Checker
	Keys     middleware.Keys
}

func NewServer(l *zap.Logger, monitors repo.MonitorStore, st *stats.Service, trigger Trigger, checker Checker, keys middleware.Keys) *Server {
	return &Server{Logger: l, Monitors: monitors, Stats: st, Trigger: trigger, Checker: checker, Keys: keys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(120, 60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAny(s.Keys))
		r.Get("/api/monitors", s.handleListMonitors)
		r.Get("/api/monitors/{id}/stats", s.handleMonitorStats)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.Keys))
		r.Post("/api/monitors", s.handleAddMonitor)
		r.Post("/api/checks/run", s.handleRunChecks)
	})

	return r
}

// handleRunChecks kicks the same due-monitor sweep the timer runs. The
// sweep happens in the background; overlapping with a live tick is safe.
func (s *Server) handleRunChecks(w http.ResponseWriter, r *http.Request) {
	go s.Trigger.RunDueChecks(context.Background())
	s.Logger.Info("manual_trigger")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"running"}`))
}

type addMonitorPayload struct {
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Target        string   `json:"target"`
	Frequency     string   `json:"frequency"`
	Locations     []string `json:"locations"`
	NotifyOnDown  bool     `json:"notify_on_down"`
	AlertChannels []string `json:"alert_channels"`
}

func (s *Server) handleAddMonitor(w http.ResponseWriter, r *http.Request) {
	var p addMonitorPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Target == "" {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	kind := domain.MonitorKind(p.Kind)
	switch kind {
	case domain.KindHTTP:
		if _, err := url.ParseRequestURI(p.Target); err != nil {
			http.Error(w, "invalid url", http.StatusBadRequest)
			return
		}
	case domain.KindHost:
	default:
		http.Error(w, "kind must be http or host", http.StatusBadRequest)
		return
	}

	freq := domain.Frequency(p.Frequency)
	if freq == "" {
		freq = domain.Every5Min
	}

	m := &domain.Monitor{
		UserID:        domain.UserID(p.UserID),
		Name:          p.Name,
		Kind:          kind,
		Target:        p.Target,
		Frequency:     freq,
		Locations:     p.Locations,
		NotifyOnDown:  p.NotifyOnDown,
		AlertChannels: p.AlertChannels,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Monitors.Add(r.Context(), m); err != nil {
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}

	// run a single check synchronously for immediate feedback
	result, err := s.Checker.CheckMonitor(r.Context(), m)
	if err != nil {
		s.Logger.Warn("first_check_error", zap.String("monitor_id", string(m.ID)), zap.Error(err))
	}

	s.Logger.Info("monitor_added",
		zap.String("monitor_id", string(m.ID)),
		zap.String("kind", string(m.Kind)),
		zap.String("target", m.Target),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"monitor": m, "result": result,
	})
}

func (s *Server) handleListMonitors(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Monitors.ListActive(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ms)
}

func (s *Server) handleMonitorStats(w http.ResponseWriter, r *http.Request) {
	id := domain.MonitorID(chi.URLParam(r, "id"))
	m, err := s.Monitors.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "lookup error", http.StatusInternalServerError)
		return
	}
	if m == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	summary, err := s.Stats.Summary(r.Context(), m)
	if err != nil {
		http.Error(w, "stats error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
