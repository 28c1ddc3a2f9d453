package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
	"github.com/bobmcallan/sentinel/internal/services/loader"
	tcommon "github.com/bobmcallan/sentinel/test/common"
)

func newTestLiveModel(client *tcommon.MockSentinelClient) liveModel {
	svc := dashboard.NewService(client, common.NewSilentLogger(), dashboard.WithClock(func() time.Time { return fixedNow }))
	return newLiveModel(context.Background(), svc, DefaultStyles(), "John")
}

func TestLiveModel_SkeletonsUntilSettled(t *testing.T) {
	guard := tcommon.NewTestOutputGuard(t)
	m := newTestLiveModel(tcommon.NewMockSentinelClient())

	view := m.View()
	guard.AssertContains(view, dashboard.PortfolioLoadingText)
	guard.AssertContains(view, alertsLoadingText)
	guard.AssertContains(view, dashboard.NewsLoadingText)
	assert.True(t, m.loading())

	alerts := dashboard.AlertsSection(loader.Result[models.Alert]{
		State: loader.StateReady,
		Items: []models.Alert{{ID: "1", Title: "Live alert", Severity: models.SeverityHigh, CreatedAt: models.Timestamp{Time: fixedNow}}},
	})
	next, cmd := m.Update(alertsMsg{gen: 0, sec: alerts})
	assert.Nil(t, cmd)
	m = next.(liveModel)

	view = m.View()
	guard.AssertContains(view, "Live alert")
	guard.AssertNotContains(view, alertsLoadingText)
	guard.AssertContains(view, dashboard.NewsLoadingText)
}

func TestLiveModel_FetchesFallBackIndependently(t *testing.T) {
	client := tcommon.NewMockSentinelClient()
	client.FailOn["GetNews"] = tcommon.ErrBackendDown
	client.Alerts = []models.Alert{{ID: "9", Title: "Live alert"}}
	m := newTestLiveModel(client)

	msg := m.fetchNews()()
	news, ok := msg.(newsMsg)
	require.True(t, ok)
	assert.Equal(t, loader.StateFallback, news.sec.State)
	assert.Len(t, news.sec.Items, 3)

	msg = m.fetchAlerts()()
	alerts, ok := msg.(alertsMsg)
	require.True(t, ok)
	assert.Equal(t, loader.StateReady, alerts.sec.State)

	msg = m.fetchPortfolio()()
	portfolio, ok := msg.(portfolioMsg)
	require.True(t, ok)
	assert.Equal(t, loader.StateEmpty, portfolio.sec.State)

	for _, in := range []tea.Msg{news, alerts, portfolio} {
		next, _ := m.Update(in)
		m = next.(liveModel)
	}
	assert.False(t, m.loading())

	guard := tcommon.NewTestOutputGuard(t)
	view := m.View()
	guard.AssertContains(view, dashboard.NewsWarning)
	guard.AssertContains(view, "Live alert")
	guard.AssertNotContains(view, dashboard.AlertsWarning)
}

func TestLiveModel_ReloadDropsStaleResults(t *testing.T) {
	m := newTestLiveModel(tcommon.NewMockSentinelClient())
	stale := m.fetchNews()()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	m = next.(liveModel)
	assert.Equal(t, 1, m.gen)

	next, _ = m.Update(stale)
	m = next.(liveModel)
	assert.Nil(t, m.news, "result from before the reload is ignored")

	next, _ = m.Update(m.fetchNews()())
	m = next.(liveModel)
	assert.NotNil(t, m.news)
}

func TestLiveModel_Quit(t *testing.T) {
	m := newTestLiveModel(tcommon.NewMockSentinelClient())
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}
