package sentinel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/session"
	"github.com/bobmcallan/sentinel/internal/storage"
)

// recorder captures the requests a test server receives.
type recorder struct {
	mu   sync.Mutex
	reqs []*http.Request
	body []string
}

func (r *recorder) add(req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	r.body = append(r.body, string(b))
}

func (r *recorder) last() (*http.Request, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.reqs)
	if n == 0 {
		return nil, ""
	}
	return r.reqs[n-1], r.body[n-1]
}

func newTestServer(t *testing.T, status int, payload string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestRequest_DefaultHeaders(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	client := NewClient(nil, WithBaseURL(srv.URL+"/"))

	_, err := client.GetAlerts(context.Background())
	require.NoError(t, err)

	req, _ := rec.last()
	require.NotNil(t, req)
	assert.Equal(t, "/api/v1/risk/alerts", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get(RequestIDHeader))
	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "sentinel/"))
	assert.Empty(t, req.Header.Get("Authorization"), "no token, no header")
}

func TestRequest_TokenLifecycle(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	sess := session.New(nil, nil)
	client := NewClient(sess, WithBaseURL(srv.URL))
	ctx := context.Background()

	require.NoError(t, sess.SetToken("abc123"))
	_, err := client.GetPortfolios(ctx)
	require.NoError(t, err)
	req, _ := rec.last()
	assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))

	_, err = client.GetNews(ctx, 5)
	require.NoError(t, err)
	req, _ = rec.last()
	assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))

	require.NoError(t, client.Logout())
	_, err = client.GetPortfolios(ctx)
	require.NoError(t, err)
	req, _ = rec.last()
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestRequest_UniqueRequestIDs(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `[]`)
	client := NewClient(nil, WithBaseURL(srv.URL))

	for i := 0; i < 3; i++ {
		_, err := client.GetAlerts(context.Background())
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, r := range rec.reqs {
		seen[r.Header.Get(RequestIDHeader)] = true
	}
	assert.Len(t, seen, 3)
}

func TestRequest_SuccessBodyDecoded(t *testing.T) {
	payload := `[{"id": 7, "title": "RBI Raises Interest Rates by 25 bps", "summary": "s",
		"source": "RBI", "url": "#", "published_at": "2025-06-15T10:00:00", "impact_score": 8.5,
		"categories": ["Banking", "Policy"]}]`
	srv, _ := newTestServer(t, http.StatusOK, payload)
	client := NewClient(nil, WithBaseURL(srv.URL))

	items, err := client.GetNews(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ID("7"), items[0].ID)
	assert.Equal(t, models.Float(8.5), items[0].ImpactScore)
	assert.Equal(t, []string{"Banking", "Policy"}, items[0].Categories)
	assert.Equal(t, 2025, items[0].PublishedAt.Year())
}

func TestRequest_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"string detail", http.StatusUnauthorized, `{"detail": "Could not validate credentials"}`, "Could not validate credentials"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body", "email"], "msg": "field required"}, {"msg": "value is not a valid email"}]}`, "field required; value is not a valid email"},
		{"no detail", http.StatusInternalServerError, `{"error": "boom"}`, "HTTP error! status: 500"},
		{"unparseable body", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP error! status: 502"},
		{"empty body", http.StatusNotFound, ``, "HTTP error! status: 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(nil, WithBaseURL(srv.URL))

			_, err := client.GetPortfolios(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "/api/v1/portfolio/", apiErr.Endpoint)
		})
	}
}

func TestRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(nil, WithBaseURL(url))
	_, err := client.GetAlerts(context.Background())
	require.Error(t, err)

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "/api/v1/risk/alerts", tErr.Endpoint)
	assert.Contains(t, err.Error(), "request to /api/v1/risk/alerts failed")
}

func TestRequest_DecodeErrors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"not": "a list"}`)
		_, err := NewClient(nil, WithBaseURL(srv.URL)).GetAlerts(context.Background())
		var dErr *DecodeError
		require.True(t, errors.As(err, &dErr))
	})

	t.Run("schema violation", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `[{"id": 1, "title": ""}]`)
		_, err := NewClient(nil, WithBaseURL(srv.URL)).GetAlerts(context.Background())
		var dErr *DecodeError
		require.True(t, errors.As(err, &dErr))
		var vErr *models.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "title", vErr.Field)
	})

	t.Run("one invalid element fails the list", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `[{"id": 1, "title": "Valid"}, {"id": 2, "title": " "}]`)
		items, err := NewClient(nil, WithBaseURL(srv.URL)).GetAlerts(context.Background())
		var dErr *DecodeError
		require.True(t, errors.As(err, &dErr))
		assert.Nil(t, items)
	})

	t.Run("empty list body", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, ``)
		items, err := NewClient(nil, WithBaseURL(srv.URL)).GetAlerts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestLogin_Success(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"access_token": "jwt-token", "token_type": "bearer"}`)
	store := storage.NewMemoryTokenStore("")
	sess := session.New(store, nil)
	client := NewClient(sess, WithBaseURL(srv.URL))

	tok, err := client.Login(context.Background(), "john", "s3cret pass")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, "jwt-token", sess.Token())

	persisted, _ := store.Load()
	assert.Equal(t, "jwt-token", persisted)

	req, body := rec.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, loginEndpoint, req.URL.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Equal(t, "password=s3cret+pass&username=john", body)
}

func TestLogin_FailureLeavesTokenUntouched(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad credentials", http.StatusBadRequest, `{"detail": "Incorrect username or password"}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"missing access_token", http.StatusOK, `{"token_type": "bearer"}`},
		{"malformed body", http.StatusOK, `{"access_token":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			store := storage.NewMemoryTokenStore("previous")
			sess := session.New(store, nil)
			client := NewClient(sess, WithBaseURL(srv.URL))

			_, err := client.Login(context.Background(), "john", "wrong")
			require.Error(t, err)
			assert.Equal(t, "previous", sess.Token())
			assert.Equal(t, 0, store.Saves)
		})
	}

	t.Run("detail surfaces", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadRequest, `{"detail": "Incorrect username or password"}`)
		_, err := NewClient(nil, WithBaseURL(srv.URL)).Login(context.Background(), "a", "b")
		assert.EqualError(t, err, "Incorrect username or password")
	})
}

func TestLogin_PersistFailureKeepsMemoryToken(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"access_token": "fresh"}`)
	store := storage.NewMemoryTokenStore("")
	store.SaveErr = errors.New("read-only filesystem")
	sess := session.New(store, nil)
	client := NewClient(sess, WithBaseURL(srv.URL))

	tok, err := client.Login(context.Background(), "john", "pw")
	require.Error(t, err)
	require.NotNil(t, tok)
	assert.Contains(t, err.Error(), "read-only filesystem")
	assert.Equal(t, "fresh", sess.Token())
}

func TestLogin_OmitsExistingToken(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"access_token": "new"}`)
	sess := session.New(storage.NewMemoryTokenStore("old"), nil)

	_, err := NewClient(sess, WithBaseURL(srv.URL)).Login(context.Background(), "u", "p")
	require.NoError(t, err)
	req, _ := rec.last()
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestEndpoints_PathsAndMethods(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/auth/"):
			io.WriteString(w, `{"id": 1, "username": "john", "email": "j@example.com", "message": "ok"}`)
		case r.URL.Path == "/api/v1/portfolio/p 1", r.Method == http.MethodPost && r.URL.Path == "/api/v1/portfolio/":
			io.WriteString(w, `{"id": "p 1", "name": "Main"}`)
		case strings.HasPrefix(r.URL.Path, "/api/v1/risk/assessment/"):
			io.WriteString(w, `{"portfolio_id": 1, "risk_score": 42.5}`)
		case r.URL.Path == "/api/v1/simulation/run":
			io.WriteString(w, `{"scenario_type": "market-crash", "duration_months": 6}`)
		case r.URL.Path == "/api/v1/playbook/generate", r.URL.Path == "/api/v1/playbook/9":
			io.WriteString(w, `{"id": 9, "title": "Your AI Defense Plan", "actions": []}`)
		case r.URL.Path == "/api/v1/risk/scan":
			io.WriteString(w, `{"message": "scan started"}`)
		default:
			io.WriteString(w, `[]`)
		}
	}))
	defer srv.Close()

	client := NewClient(nil, WithBaseURL(srv.URL))
	ctx := context.Background()

	type call struct {
		method, path, query string
		run                 func() error
	}
	calls := []call{
		{"POST", "/api/v1/auth/register", "", func() error {
			_, err := client.Register(ctx, models.RegisterRequest{Email: "j@example.com", Username: "john", Password: "password1", FullName: "John"})
			return err
		}},
		{"GET", "/api/v1/auth/me", "", func() error { _, err := client.CurrentUser(ctx); return err }},
		{"POST", "/api/v1/auth/change-password", "", func() error {
			return client.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "a", NewPassword: "longenough"})
		}},
		{"GET", "/api/v1/portfolio/", "", func() error { _, err := client.GetPortfolios(ctx); return err }},
		{"GET", "/api/v1/portfolio/p 1", "", func() error { _, err := client.GetPortfolio(ctx, "p 1"); return err }},
		{"POST", "/api/v1/portfolio/", "", func() error {
			_, err := client.CreatePortfolio(ctx, models.PortfolioCreate{Name: "Main", Currency: "INR"})
			return err
		}},
		{"GET", "/api/v1/portfolio/5/holdings", "", func() error { _, err := client.GetHoldings(ctx, "5"); return err }},
		{"GET", "/api/v1/risk/assessment/5", "", func() error { _, err := client.GetRiskAssessment(ctx, "5"); return err }},
		{"GET", "/api/v1/risk/alerts", "", func() error { _, err := client.GetAlerts(ctx); return err }},
		{"POST", "/api/v1/risk/scan", "", func() error { return client.TriggerRiskScan(ctx) }},
		{"POST", "/api/v1/simulation/run", "", func() error {
			_, err := client.RunSimulation(ctx, models.SimulationRequest{ScenarioType: models.ScenarioMarketCrash, DurationMonths: 6})
			return err
		}},
		{"GET", "/api/v1/simulation/history", "", func() error { _, err := client.GetSimulationHistory(ctx); return err }},
		{"GET", "/api/v1/simulation/scenarios", "", func() error { _, err := client.GetScenarios(ctx); return err }},
		{"GET", "/api/v1/news/", "limit=3", func() error { _, err := client.GetNews(ctx, 3); return err }},
		{"GET", "/api/v1/news/", "", func() error { _, err := client.GetNews(ctx, 0); return err }},
		{"GET", "/api/v1/news/policy-updates", "", func() error { _, err := client.GetPolicyUpdates(ctx); return err }},
		{"GET", "/api/v1/playbook/", "", func() error { _, err := client.GetPlaybooks(ctx); return err }},
		{"GET", "/api/v1/playbook/9", "", func() error { _, err := client.GetPlaybook(ctx, "9"); return err }},
		{"POST", "/api/v1/playbook/generate", "", func() error { _, err := client.GeneratePlaybook(ctx); return err }},
	}

	for _, c := range calls {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			require.NoError(t, c.run())
			req, _ := rec.last()
			assert.Equal(t, c.method, req.Method)
			assert.Equal(t, c.path, req.URL.Path)
			assert.Equal(t, c.query, req.URL.RawQuery)
		})
	}
}

func TestRunSimulation_SendsJSONBody(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"scenario_type": "custom", "duration_months": 12}`)
	client := NewClient(nil, WithBaseURL(srv.URL))

	shock := models.DefaultCustomShock()
	_, err := client.RunSimulation(context.Background(), models.SimulationRequest{
		ScenarioType:   models.ScenarioCustom,
		DurationMonths: 12,
		Severity:       "severe",
		Custom:         &shock,
	})
	require.NoError(t, err)

	_, body := rec.last()
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &sent))
	assert.Equal(t, "custom", sent["scenario_type"])
	assert.Equal(t, float64(12), sent["duration_months"])
	assert.Equal(t, "severe", sent["severity"])
	custom := sent["custom"].(map[string]any)
	assert.Equal(t, float64(30), custom["stock_market_impact"])
}

func TestWithRateLimit(t *testing.T) {
	c := NewClient(nil, WithRateLimit(0))
	assert.Nil(t, c.limiter)

	c = NewClient(nil, WithRateLimit(5))
	require.NotNil(t, c.limiter)
	assert.Equal(t, 5, c.limiter.Burst())
}

func TestWithTimeout(t *testing.T) {
	assert.Zero(t, NewClient(nil).httpClient.Timeout, "no timeout by default")
	assert.Equal(t, 2*time.Second, NewClient(nil, WithTimeout(2*time.Second)).httpClient.Timeout)
}

func TestRequest_ContextCancelled(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[]`)
	client := NewClient(nil, WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetAlerts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
