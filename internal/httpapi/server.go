package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/httpapi/middleware"
	"github.com/hamed0406/resourceprobe/internal/repo"
	"github.com/hamed0406/resourceprobe/internal/runner"
)

type Server struct {
	Logger *zap.Logger
	Runner *runner.Runner
	Runs   repo.RunStore
	Keys   []string
}

func NewServer(l *zap.Logger, r *runner.Runner, runs repo.RunStore, keys []string) *Server {
	return &Server{Logger: l, Runner: r, Runs: runs, Keys: keys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireKey(s.Keys))
		g.Post("/api/probes", s.handleProbe)
		g.Get("/api/runs", s.handleListRuns)
	})

	return r
}

type probePayload struct {
	URL string `json:"url"`
}

// handleProbe runs the full check sequence for one URL synchronously
// and returns the outcomes. The run also lands in history.
func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	var p probePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if u, err := url.Parse(p.URL); err != nil || u.Host == "" {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}

	outcomes := s.Runner.RunURL(r.Context(), p.URL)

	run := &repo.Run{
		Suite:     s.Runner.Cfg.SuiteName,
		StartedAt: time.Now().UTC(),
		Outcomes:  outcomes,
	}
	if err := s.Runs.SaveRun(r.Context(), run); err != nil {
		s.Logger.Warn("save_run_error", zap.String("url", p.URL), zap.Error(err))
	}

	s.Logger.Info("probe_requested",
		zap.String("url", p.URL),
		zap.Int("outcomes", len(outcomes)),
		zap.Int("failures", run.Failures()),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"run_id":   run.ID,
		"outcomes": outcomes,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := s.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(runs)
}
