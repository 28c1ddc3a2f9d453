package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
)

const alertsLoadingText = "Loading alerts..."

// Section results carry the reload generation they were fetched for so a
// slow response from before a reload is dropped.
type (
	alertsMsg struct {
		gen int
		sec dashboard.Section[models.Alert]
	}
	newsMsg struct {
		gen int
		sec dashboard.Section[models.NewsItem]
	}
	portfolioMsg struct {
		gen int
		sec dashboard.PortfolioSection
	}
)

// liveModel is the interactive dashboard. Every section renders its own
// loading skeleton until its fetch settles.
type liveModel struct {
	ctx      context.Context
	svc      *dashboard.Service
	styles   Styles
	greeting string
	spinner  spinner.Model
	gen      int

	alerts    *dashboard.Section[models.Alert]
	news      *dashboard.Section[models.NewsItem]
	portfolio *dashboard.PortfolioSection
}

func newLiveModel(ctx context.Context, svc *dashboard.Service, styles Styles, greeting string) liveModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner
	return liveModel{
		ctx:      ctx,
		svc:      svc,
		styles:   styles,
		greeting: greeting,
		spinner:  sp,
	}
}

func (m liveModel) fetchAlerts() tea.Cmd {
	gen, ctx, svc := m.gen, m.ctx, m.svc
	return func() tea.Msg {
		return alertsMsg{gen: gen, sec: svc.Alerts(ctx)}
	}
}

func (m liveModel) fetchNews() tea.Cmd {
	gen, ctx, svc := m.gen, m.ctx, m.svc
	return func() tea.Msg {
		return newsMsg{gen: gen, sec: svc.News(ctx)}
	}
}

func (m liveModel) fetchPortfolio() tea.Cmd {
	gen, ctx, svc := m.gen, m.ctx, m.svc
	return func() tea.Msg {
		return portfolioMsg{gen: gen, sec: svc.Portfolio(ctx)}
	}
}

func (m liveModel) fetchAll() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchPortfolio(), m.fetchAlerts(), m.fetchNews())
}

func (m liveModel) Init() tea.Cmd {
	return m.fetchAll()
}

func (m liveModel) loading() bool {
	return m.alerts == nil || m.news == nil || m.portfolio == nil
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.gen++
			m.alerts, m.news, m.portfolio = nil, nil, nil
			return m, m.fetchAll()
		}

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case alertsMsg:
		if msg.gen == m.gen {
			m.alerts = &msg.sec
		}

	case newsMsg:
		if msg.gen == m.gen {
			m.news = &msg.sec
		}

	case portfolioMsg:
		if msg.gen == m.gen {
			m.portfolio = &msg.sec
		}
	}
	return m, nil
}

func (m liveModel) skeleton(title, text string) string {
	return m.styles.Title.Render(title) + "\n" + m.spinner.View() + " " + m.styles.Muted.Render(text) + "\n"
}

func (m liveModel) View() string {
	var sb strings.Builder
	now := m.svc.Now()

	sb.WriteString(formatOverview(m.styles, m.greeting))
	sb.WriteString("\n")

	if m.portfolio == nil {
		sb.WriteString(m.skeleton(dashboard.PortfolioTitle, dashboard.PortfolioLoadingText))
	} else {
		sb.WriteString(formatPortfolio(m.styles, *m.portfolio))
	}
	sb.WriteString("\n")

	if m.alerts == nil {
		sb.WriteString(m.skeleton(dashboard.AlertsTitle, alertsLoadingText))
	} else {
		sb.WriteString(formatAlerts(m.styles, *m.alerts, now))
	}
	sb.WriteString("\n")

	if m.news == nil {
		sb.WriteString(m.skeleton(dashboard.NewsTitle, dashboard.NewsLoadingText))
	} else {
		sb.WriteString(formatNews(m.styles, *m.news, now))
	}

	sb.WriteString("\n" + m.styles.Muted.Render("r reload · q quit") + "\n")
	return sb.String()
}
