package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/config"
	"github.com/hamed0406/resourceprobe/internal/domain"
	"github.com/hamed0406/resourceprobe/internal/probe"
	"github.com/hamed0406/resourceprobe/internal/repo/memory"
	"github.com/hamed0406/resourceprobe/internal/runner"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, hostname string) (string, error) {
	return "1.2.3.4", nil
}

type stubProber struct{}

func (stubProber) Probe(ctx context.Context, target string) probe.Result {
	return probe.Result{StatusCode: 200, FinalURL: target, Elapsed: 0.01}
}

func newTestServer(keys []string) (*Server, *memory.Store) {
	store := memory.New()
	run := &runner.Runner{
		Logger:   zap.NewNop(),
		Resolver: stubResolver{},
		Prober:   stubProber{},
		Cfg:      config.Config{Timeout: 5, CheckHTTPS: true, VerifySSL: true, SuiteName: "resource-availability"},
	}
	return NewServer(zap.NewNop(), run, store, keys), store
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(nil)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestHandleProbe_RunsAndStores(t *testing.T) {
	s, store := newTestServer(nil)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	body := strings.NewReader(`{"url":"https://example.com"}`)
	resp, err := http.Post(ts.URL+"/api/probes", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/probes: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var out struct {
		RunID    int64            `json:"run_id"`
		Outcomes []domain.Outcome `json:"outcomes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Outcomes) != 2 {
		t.Fatalf("want dns + https outcomes, got %d", len(out.Outcomes))
	}
	if out.Outcomes[0].CaseName != "dns_resolution[https://example.com]" {
		t.Fatalf("first outcome should be DNS, got %q", out.Outcomes[0].CaseName)
	}
	if out.RunID == 0 {
		t.Fatalf("run should be stored with an ID")
	}

	runs, _ := store.ListRuns(context.Background(), 10)
	if len(runs) != 1 || len(runs[0].Outcomes) != 2 {
		t.Fatalf("run not stored: %+v", runs)
	}
}

func TestHandleProbe_BadPayload(t *testing.T) {
	s, _ := newTestServer(nil)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	for _, body := range []string{`{}`, `not json`, `{"url":"://bad"}`} {
		resp, err := http.Post(ts.URL+"/api/probes", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: want 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestAPIKeyRequired(t *testing.T) {
	s, _ := newTestServer([]string{"sekrit"})
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/runs")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 without key, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/runs", nil)
	req.Header.Set("X-API-Key", "sekrit")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200 with key, got %d", resp.StatusCode)
	}

	// healthz stays open
	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("healthz should not require a key, got %d", resp.StatusCode)
	}
}
