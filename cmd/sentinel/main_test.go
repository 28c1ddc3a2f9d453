package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
	"github.com/bobmcallan/sentinel/internal/storage"
	tcommon "github.com/bobmcallan/sentinel/test/common"
)

// runCLI executes one command against the environment's fake backend and
// credentials file.
func runCLI(t *testing.T, env *tcommon.TestEnvironment, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"SENTINEL_CONFIG", "SENTINEL_NEWS_LIMIT", "SENTINEL_API_TIMEOUT", "SENTINEL_API_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--api-url", env.Backend.URL(),
		"--token-path", env.Config.Session.TokenPath,
		"--log-level", "error",
	}, args...))

	err := root.ExecuteContext(env.Context())
	return out.String(), err
}

func storedToken(t *testing.T, env *tcommon.TestEnvironment) string {
	t.Helper()
	tok, err := storage.NewFileTokenStore(env.Config.Session.TokenPath, nil).Load()
	require.NoError(t, err)
	return tok
}

func signedToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "john",
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func lastRequest(t *testing.T, env *tcommon.TestEnvironment) tcommon.RecordedRequest {
	t.Helper()
	reqs := env.Backend.Requests()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1]
}

func TestCLI_AccountLifecycle(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	token := signedToken(t)

	env.Backend.Handle("POST", "/api/v1/auth/login/access-token", map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
	env.Backend.Handle("GET", "/api/v1/auth/me", map[string]any{
		"id":        42,
		"username":  "john",
		"email":     "john@example.com",
		"full_name": "John Doe",
		"is_active": true,
	})

	// Password read from stdin when the flag is omitted
	out, err := runCLI(t, env, "s3cret-pass\n", "login", "john")
	require.NoError(t, err)
	guard.AssertContains(out, "Logged in as john")
	guard.AssertContains(out, "Token saved to "+env.Config.Session.TokenPath)
	assert.Equal(t, token, storedToken(t, env))
	assert.Empty(t, lastRequest(t, env).Authorization, "login is sent without a bearer token")

	// A new process picks the token up from disk
	out, err = runCLI(t, env, "", "whoami")
	require.NoError(t, err)
	guard.AssertContains(out, "john@example.com")
	guard.AssertContains(out, "John Doe")
	assert.Equal(t, "Bearer "+token, lastRequest(t, env).Authorization)

	out, err = runCLI(t, env, "", "token")
	require.NoError(t, err)
	guard.AssertContains(out, "Subject:  john")
	guard.AssertContains(out, "User ID:  42")
	guard.AssertNotContains(out, "(expired)")

	out, err = runCLI(t, env, "", "logout")
	require.NoError(t, err)
	guard.AssertContains(out, "Logged out")
	assert.Empty(t, storedToken(t, env))

	_, err = runCLI(t, env, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = runCLI(t, env, "", "token")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCLI_LoginFailureStoresNothing(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)

	_, err := runCLI(t, env, "", "login", "john", "--password", "wrong")
	require.EqualError(t, err, "Not Found")
	assert.Empty(t, storedToken(t, env))

	env.Backend.SetDown(true)
	_, err = runCLI(t, env, "", "login", "john", "--password", "wrong")
	require.EqualError(t, err, "HTTP error! status: 503")
	assert.Empty(t, storedToken(t, env))
}

func TestCLI_RegisterAndPasswd(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.Handle("POST", "/api/v1/auth/register", map[string]any{
		"id": 7, "username": "priya", "email": "priya@example.com", "is_active": true,
	})
	env.Backend.Handle("POST", "/api/v1/auth/change-password", map[string]any{"message": "Password updated successfully"})

	out, err := runCLI(t, env, "", "register", "--email", "priya@example.com", "--username", "priya", "--password", "longenough")
	require.NoError(t, err)
	guard.AssertContains(out, "Registered priya (priya@example.com)")

	_, err = runCLI(t, env, "", "register", "--email", "not-an-email", "--username", "priya", "--password", "longenough")
	assert.Error(t, err)

	out, err = runCLI(t, env, "old-password\nnew-password-1\n", "passwd")
	require.NoError(t, err)
	guard.AssertContains(out, "Password updated")
}

func TestCLI_NewsFallsBackWhenBackendDown(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.SetDown(true)

	out, err := runCLI(t, env, "", "news")
	require.NoError(t, err)
	guard.AssertContains(out, dashboard.NewsWarning)
	guard.AssertOrder(out,
		"RBI Raises Interest Rates by 25 bps",
		"Tech Stocks Down 3% on Regulatory Concerns",
		"Gold Prices Rally Amid Global Uncertainty",
	)

	reqs := env.Backend.Requests()
	require.Len(t, reqs, 1, "one fetch, no retries")
	assert.Equal(t, "/api/v1/news/", reqs[0].Path)
	assert.Equal(t, "limit=3", reqs[0].RawQuery)

	_, err = runCLI(t, env, "", "news", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "limit=5", lastRequest(t, env).RawQuery)
}

func TestCLI_DashboardSectionsSettleIndependently(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.Handle("GET", "/api/v1/risk/alerts", []any{})
	env.Backend.Handle("GET", "/api/v1/portfolio/", []map[string]any{
		{"id": 1, "name": "Main Portfolio", "total_value": 2456789, "currency": "INR"},
	})
	// news is not routed, so it 404s and falls back

	out, err := runCLI(t, env, "", "dashboard")
	require.NoError(t, err)

	guard.AssertOrder(out, "Welcome back, John.", "Main Portfolio", dashboard.AlertsEmptyText, dashboard.NewsWarning)
	guard.AssertNotContains(out, dashboard.AlertsWarning)
	guard.AssertNotContains(out, dashboard.PortfolioWarning)
	guard.AssertContains(out, "RBI Raises Interest Rates by 25 bps")
}

func TestCLI_Simulate(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.SetDown(true)

	_, err := runCLI(t, env, "", "simulate", "--duration", "5")
	require.Error(t, err)
	assert.Empty(t, env.Backend.Requests(), "invalid requests never reach the backend")

	chartPath := filepath.Join(env.DataDir, "timeline.png")
	out, err := runCLI(t, env, "", "simulate", "--scenario", "job-loss", "--duration", "12", "--chart", chartPath)
	require.NoError(t, err)
	guard.AssertContains(out, dashboard.SimulationWarning)
	guard.AssertContains(out, "Simulation Results: Market Crash (-30%)")
	guard.AssertContains(out, "Chart written to "+chartPath)

	png, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestCLI_PortfolioChart(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	env.Backend.SetDown(true)

	chartPath := filepath.Join(env.DataDir, "allocation.png")
	out, err := runCLI(t, env, "", "portfolio", "--tab", "allocation", "--chart", chartPath)
	require.NoError(t, err)
	assert.Contains(t, out, dashboard.PortfolioWarning)
	assert.FileExists(t, chartPath)

	_, err = runCLI(t, env, "", "portfolio", "--tab", "holdings")
	assert.Error(t, err)
}

func TestCLI_PlaybookAndPolicy(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.SetDown(true)

	out, err := runCLI(t, env, "", "playbook", "--horizon", "long-term")
	require.NoError(t, err)
	guard.AssertContains(out, "Long-term Strategy")
	guard.AssertNotContains(out, "Immediate Actions")

	_, err = runCLI(t, env, "", "playbook", "--horizon", "someday")
	assert.Error(t, err)

	out, err = runCLI(t, env, "", "policy", "--category", "crypto")
	require.NoError(t, err)
	guard.AssertOrder(out, "New Crypto Taxation Framework Announced", "RBI Announces CBDC Pilot Expansion")

	_, err = runCLI(t, env, "", "policy", "--category", "forex")
	assert.Error(t, err)

	out, err = runCLI(t, env, "", "scenarios")
	require.NoError(t, err)
	guard.AssertContains(out, dashboard.ScenariosWarning)
	guard.AssertContains(out, "Currency Devaluation (-20%)")
}

func TestCLI_PolicyAllTabShowsLiveUpdates(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)
	guard := tcommon.NewTestOutputGuard(t)
	env.Backend.Handle("GET", "/api/v1/news/policy-updates", []map[string]any{
		{"id": 1, "title": "Savings Account Rule", "severity": "low", "categories": []string{"banking"}},
		{"id": 2, "title": "Capital Gains Change", "severity": "high", "categories": []string{"taxation"}},
	})

	out, err := runCLI(t, env, "", "policy")
	require.NoError(t, err)
	guard.AssertOrder(out, "Savings Account Rule", "Capital Gains Change")
	guard.AssertNotContains(out, dashboard.PolicyEmptyText)
	guard.AssertNotContains(out, dashboard.PolicyWarning)

	out, err = runCLI(t, env, "", "policy", "--category", "taxation")
	require.NoError(t, err)
	guard.AssertContains(out, "Capital Gains Change")
	guard.AssertNotContains(out, "Savings Account Rule")
}

func TestCLI_Version(t *testing.T) {
	env := tcommon.SetupTestEnvironment(t)

	out, err := runCLI(t, env, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, common.GetVersion())
	assert.Contains(t, out, env.Backend.URL())
	assert.Empty(t, env.Backend.Requests())
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("SENTINEL_CONFIG", "")
	t.Setenv("SENTINEL_API_URL", "http://from-env:9000")

	cfg, err := loadConfig(&rootFlags{apiURL: "http://from-flag:8000/", tokenPath: "-", logLevel: "DEBUG"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:8000", cfg.API.BaseURL)
	assert.True(t, cfg.Session.Disabled)
	assert.Equal(t, "debug", cfg.Logging.Level)

	cfg, err = loadConfig(&rootFlags{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.API.BaseURL)
}
