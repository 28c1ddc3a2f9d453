package common

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/sentinel/internal/common"
)

// FakeBackend is an in-process Sentinel API. Routes answer with canned
// JSON; Down makes every route fail with 503 and no detail.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]any
	down     bool
	requests []RecordedRequest
}

// RecordedRequest is one request seen by the fake backend.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
}

// NewFakeBackend starts a fake backend that is stopped on test cleanup
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{routes: make(map[string]any)}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the backend base URL
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// Handle registers a JSON response for "METHOD /path"
func (fb *FakeBackend) Handle(method, path string, body any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = body
}

// SetDown toggles the outage mode
func (fb *FakeBackend) SetDown(down bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.down = down
}

// Requests returns the requests received so far
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.requests = append(fb.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
	})
	down := fb.down
	body, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case down:
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{}`))
	case !ok:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not Found"})
	default:
		json.NewEncoder(w).Encode(body)
	}
}

// TestEnvironment provides an isolated config, token path and fake backend
type TestEnvironment struct {
	t       *testing.T
	Backend *FakeBackend
	Config  *common.Config
	Logger  *common.Logger
	DataDir string
}

// SetupTestEnvironment creates a new test environment
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	dataDir := t.TempDir()
	backend := NewFakeBackend(t)

	config := common.NewDefaultConfig()
	config.Environment = "test"
	config.API.BaseURL = backend.URL()
	config.Session.TokenPath = filepath.Join(dataDir, "credentials.toml")

	return &TestEnvironment{
		t:       t,
		Backend: backend,
		Config:  config,
		Logger:  common.NewSilentLogger(),
		DataDir: dataDir,
	}
}

// Context returns a test context with timeout
func (e *TestEnvironment) Context() context.Context {
	timeout := 30 * time.Second
	if envTimeout := os.Getenv("SENTINEL_TEST_TIMEOUT"); envTimeout != "" {
		if d, err := time.ParseDuration(envTimeout); err == nil {
			timeout = d
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	e.t.Cleanup(cancel)
	return ctx
}

// TestOutputGuard validates rendered output
type TestOutputGuard struct {
	t *testing.T
}

// NewTestOutputGuard creates a new output guard
func NewTestOutputGuard(t *testing.T) *TestOutputGuard {
	return &TestOutputGuard{t: t}
}

// AssertContains checks if output contains expected text
func (g *TestOutputGuard) AssertContains(output, expected string) {
	g.t.Helper()
	if !strings.Contains(output, expected) {
		g.t.Errorf("Expected output to contain %q, but it didn't.\nOutput: %s", expected, truncate(output, 500))
	}
}

// AssertNotContains checks if output does not contain text
func (g *TestOutputGuard) AssertNotContains(output, unexpected string) {
	g.t.Helper()
	if strings.Contains(output, unexpected) {
		g.t.Errorf("Expected output NOT to contain %q, but it did.\nOutput: %s", unexpected, truncate(output, 500))
	}
}

// AssertOrder checks that each snippet appears after the previous one
func (g *TestOutputGuard) AssertOrder(output string, snippets ...string) {
	g.t.Helper()
	rest := output
	for _, s := range snippets {
		i := strings.Index(rest, s)
		if i < 0 {
			g.t.Errorf("Expected %q in order.\nOutput: %s", s, truncate(output, 500))
			return
		}
		rest = rest[i+len(s):]
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
