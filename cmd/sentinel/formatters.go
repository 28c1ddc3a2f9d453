package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
	"github.com/bobmcallan/sentinel/internal/session"
)

const barWidth = 20

var impactGlyphs = map[string]string{
	dashboard.IconAlertCircle:  "!",
	dashboard.IconTrendingDown: "▼",
	dashboard.IconTrendingUp:   "▲",
}

// bar draws a 0-100 score as a fixed-width gauge
func bar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// formatHeader renders a section title, description and the degraded banner.
func formatHeader(st Styles, title, desc, warning string) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(title))
	sb.WriteString("\n")
	if desc != "" {
		sb.WriteString(st.Description.Render(desc))
		sb.WriteString("\n")
	}
	if warning != "" {
		sb.WriteString(st.Warning.Render(warning))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatEmpty(st Styles, text string) string {
	return st.Muted.Render(text) + "\n"
}

// formatAlerts renders the alert timeline
func formatAlerts(st Styles, sec dashboard.Section[models.Alert], now time.Time) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))
	if len(sec.Items) == 0 {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
		return sb.String()
	}
	for _, a := range sec.Items {
		dot := toneStyle(dashboard.SeverityTone(a.Severity)).Render("●")
		title := a.Title
		if !a.IsRead {
			title = st.Title.Render(title)
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", dot, title, st.Muted.Render(dashboard.FormatAlertAge(a.CreatedAt.Time, now))))
		if a.Message != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", a.Message))
		}
	}
	return sb.String()
}

// formatNews renders the news feed
func formatNews(st Styles, sec dashboard.Section[models.NewsItem], now time.Time) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))
	if len(sec.Items) == 0 {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
		return sb.String()
	}
	for i, n := range sec.Items {
		if i > 0 {
			sb.WriteString("\n")
		}
		impact := dashboard.ImpactBucket(float64(n.ImpactScore))
		tag := toneStyle(impact.Tone).Render(impactGlyphs[impact.Icon] + " " + impact.Label)
		sb.WriteString(fmt.Sprintf("%s  %s\n", st.Title.Render(n.Title), tag))
		if n.Summary != "" {
			sb.WriteString(n.Summary + "\n")
		}
		meta := []string{}
		if n.Source != "" {
			meta = append(meta, n.Source)
		}
		meta = append(meta, dashboard.FormatNewsAge(n.PublishedAt.Time, now))
		if len(n.Categories) > 0 {
			meta = append(meta, strings.Join(n.Categories, ", "))
		}
		sb.WriteString(st.Muted.Render(strings.Join(meta, " · ")) + "\n")
	}
	return sb.String()
}

// formatOverview renders the greeting, stat cards and swan radar
func formatOverview(st Styles, greeting string) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, dashboard.OverviewTitle, dashboard.Greeting(greeting), ""))

	cards := dashboard.StatCards()
	rendered := make([]string, len(cards))
	for i, c := range cards {
		arrow := "▼"
		if c.Up {
			arrow = "▲"
		}
		change := toneStyle(c.Tone).Render(fmt.Sprintf("%s %.1f%%", arrow, c.ChangePct))
		rendered[i] = st.Card.Render(fmt.Sprintf("%s\n%s\n%s %s", st.Muted.Render(c.Title), st.Title.Render(c.Value), change, st.Muted.Render(c.Caption)))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n\n")

	sb.WriteString(formatHeader(st, dashboard.RadarTitle, dashboard.RadarDescription, ""))
	for _, r := range dashboard.SwanRadar() {
		sb.WriteString(fmt.Sprintf("%-14s %s %3.0f\n", r.Label, toneStyle(dashboard.RadarTone(r.Level)).Render(bar(r.Level)), r.Level))
	}
	return sb.String()
}

// formatPortfolio renders the portfolio summary as text
func formatPortfolio(st Styles, sec dashboard.PortfolioSection) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))

	if sec.Empty() {
		sb.WriteString(formatEmpty(st, sec.EmptyText) + "\n")
	}
	if len(sec.Items) > 0 {
		sb.WriteString(st.Heading.Render("Portfolios") + "\n")
		for _, p := range sec.Items {
			sb.WriteString(fmt.Sprintf("  %-24s %14s  %s\n", p.Name, dashboard.FormatINR(float64(p.TotalValue)), p.Currency))
		}
		sb.WriteString(fmt.Sprintf("  %-24s %14s\n\n", "Total", dashboard.FormatINR(sec.TotalValue())))
	}

	sb.WriteString(st.Heading.Render("Asset Allocation") + "\n")
	for _, s := range sec.Allocation {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#" + s.Color))
		sb.WriteString(fmt.Sprintf("  %-12s %s %3.0f%%\n", s.Label, style.Render(bar(s.Value)), s.Value))
	}

	if n := len(sec.NetWorth.Values); n > 0 && len(sec.NetWorth.Labels) >= n {
		sb.WriteString("\n" + st.Heading.Render("Net Worth") + "\n")
		sb.WriteString(fmt.Sprintf("  %s %s\n", sec.NetWorth.Labels[n-1], dashboard.FormatLakhs(sec.NetWorth.Values[n-1])))
	}

	if len(sec.CashFlow) > 0 {
		sb.WriteString("\n" + st.Heading.Render("Monthly Cash Flow") + "\n")
		for _, s := range sec.CashFlow {
			if n := len(s.Values); n > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s %s\n", s.Name, dashboard.FormatLakhs(s.Values[n-1])))
			}
		}
	}
	return sb.String()
}

// formatScenarios renders the scenario menu and its options
func formatScenarios(st Styles, sec dashboard.Section[models.Scenario]) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, dashboard.SimulatorTitle, "Test your financial resilience against black swan events", sec.Warning))
	if len(sec.Items) == 0 {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
	}
	for _, s := range sec.Items {
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", s.ID, s.Name))
	}
	sb.WriteString(fmt.Sprintf("  %-22s %s\n\n", models.ScenarioCustom, dashboard.ScenarioLabel(models.ScenarioCustom)))

	durations := make([]string, len(models.SimulationDurations))
	for i, d := range models.SimulationDurations {
		durations[i] = fmt.Sprintf("%d", d)
	}
	sb.WriteString(st.Muted.Render("Durations (months): "+strings.Join(durations, ", ")) + "\n")
	sb.WriteString(st.Muted.Render("Severities: "+strings.Join(models.SimulationSeverities, ", ")) + "\n")
	return sb.String()
}

// formatSimulation renders a simulation outcome
func formatSimulation(st Styles, sec dashboard.SimulationSection) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))

	out := sec.Outcome()
	if out == nil {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
		return sb.String()
	}

	impactTone := dashboard.ToneGreen
	if out.NetWorthImpactPct < 0 {
		impactTone = dashboard.ToneRed
	}
	sb.WriteString(fmt.Sprintf("Net Worth Impact   %s  %s\n",
		toneStyle(impactTone).Render(dashboard.FormatPercent(float64(out.NetWorthImpactPct))),
		dashboard.FormatINR(float64(out.NetWorthImpactAmount))))
	sb.WriteString(fmt.Sprintf("Survival Period    %.1f months  %s\n", float64(out.SurvivalMonths), out.SurvivalStatus))
	sb.WriteString(fmt.Sprintf("Recovery Time      %.1f years\n", float64(out.RecoveryYears)))

	if len(out.ImpactMetrics) > 0 {
		sb.WriteString("\n" + st.Heading.Render("Impact Analysis") + "\n")
		for _, m := range out.ImpactMetrics {
			sb.WriteString(fmt.Sprintf("  %-12s %5.0f → %-5.0f\n", m.Label, float64(m.Before), float64(m.After)))
		}
	}

	if len(out.Timeline) > 0 {
		sb.WriteString("\n" + st.Heading.Render("Timeline") + "\n")
		for _, p := range out.Timeline {
			sb.WriteString(fmt.Sprintf("  %-10s %s\n", p.Label, dashboard.FormatLakhs(float64(p.NetWorth))))
		}
	}

	if len(out.AffectedAssets) > 0 {
		sb.WriteString("\n" + st.Heading.Render("Affected Assets") + "\n")
		for _, a := range out.AffectedAssets {
			sb.WriteString(fmt.Sprintf("  %-22s %s  %s\n", a.Name, toneStyle(dashboard.AssetTone(a.Severity)).Render(fmt.Sprintf("%6s", a.Impact)), a.Value))
		}
	}
	return sb.String()
}

// formatPlaybook renders the defense plan. An empty horizon renders all of them.
func formatPlaybook(st Styles, sec dashboard.PlaybookSection, horizon string) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))

	if len(sec.Items) == 0 {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
	}

	horizons := dashboard.Horizons
	if horizon != "" {
		horizons = []string{horizon}
	}
	for _, plan := range sec.Items {
		for _, h := range horizons {
			actions := plan.ActionsFor(h)
			if len(actions) == 0 {
				continue
			}
			label := dashboard.HorizonLabels[h]
			if label == "" {
				label = h
			}
			sb.WriteString(st.Heading.Render(label) + "\n")
			for _, a := range actions {
				sb.WriteString(fmt.Sprintf("  %s %s %s %s\n",
					st.Title.Render(a.Title),
					badge(dashboard.ActionImpactBadge(a.Impact)),
					badge(dashboard.EffortBadge(a.Effort)),
					badge(dashboard.StatusBadge(a))))
				sb.WriteString(fmt.Sprintf("    %s\n", a.Description))
			}
			sb.WriteString("\n")
		}
	}

	if len(sec.Resilience) > 0 {
		sb.WriteString(st.Heading.Render("Risk Mitigation Progress") + "\n")
		for _, r := range sec.Resilience {
			sb.WriteString(fmt.Sprintf("  %-30s %s %3.0f%%\n", r.Label, toneStyle(dashboard.ResilienceTone(r.Score)).Render(bar(r.Score)), r.Score))
		}
	}
	return sb.String()
}

// formatPolicy renders the policy watch tab and impact analysis
func formatPolicy(st Styles, sec dashboard.PolicySection) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(st, sec.Title, sec.Description, sec.Warning))

	tabs := make([]string, len(dashboard.PolicyCategories))
	for i, c := range dashboard.PolicyCategories {
		if strings.EqualFold(c, sec.Category) {
			tabs[i] = st.Title.Render("[" + c + "]")
		} else {
			tabs[i] = st.Muted.Render(c)
		}
	}
	sb.WriteString(strings.Join(tabs, "  ") + "\n\n")

	if len(sec.Items) == 0 {
		sb.WriteString(formatEmpty(st, sec.EmptyText))
	}
	for _, p := range sec.Items {
		sb.WriteString(fmt.Sprintf("%s %s\n", st.Title.Render(p.Title), badge(dashboard.PolicyBadge(p.Severity))))
		if date := dashboard.FormatPolicyDate(p.PublishedAt.Time); date != "" {
			sb.WriteString(st.Muted.Render(date) + "\n")
		}
		if p.Summary != "" {
			sb.WriteString(p.Summary + "\n")
		}
		if p.Impact != "" {
			sb.WriteString("Impact: " + p.Impact + "\n")
		}
		if len(p.Sectors) > 0 {
			sb.WriteString(st.Muted.Render(strings.Join(p.Sectors, ", ")) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(sec.Analysis) > 0 {
		sb.WriteString(st.Heading.Render("Policy Impact Analysis") + "\n")
		for _, a := range sec.Analysis {
			sb.WriteString(fmt.Sprintf("  %-16s %s %s\n", a.Title, a.Value, toneStyle(a.Tone).Render(a.Detail)))
		}
	}
	return sb.String()
}

// formatUser renders the current account
func formatUser(st Styles, u *models.User) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(u.Username) + "\n")
	sb.WriteString(fmt.Sprintf("Email:   %s\n", u.Email))
	if u.FullName != "" {
		sb.WriteString(fmt.Sprintf("Name:    %s\n", u.FullName))
	}
	if u.RiskTolerance != "" {
		sb.WriteString(fmt.Sprintf("Risk:    %s\n", u.RiskTolerance))
	}
	status := "active"
	if !u.IsActive {
		status = "inactive"
	}
	sb.WriteString(fmt.Sprintf("Status:  %s\n", status))
	return sb.String()
}

// formatClaims renders the decoded session token
func formatClaims(st Styles, c *session.Claims, now time.Time) string {
	var sb strings.Builder
	if c.Subject != "" {
		sb.WriteString(fmt.Sprintf("Subject:  %s\n", c.Subject))
	}
	if c.UserID != "" {
		sb.WriteString(fmt.Sprintf("User ID:  %s\n", c.UserID))
	}
	if !c.IssuedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Issued:   %s\n", c.IssuedAt.Format(time.RFC3339)))
	}
	if c.ExpiresAt.IsZero() {
		sb.WriteString("Expires:  never\n")
	} else {
		line := fmt.Sprintf("Expires:  %s", c.ExpiresAt.Format(time.RFC3339))
		if c.Expired(now) {
			line += " " + toneStyle(dashboard.ToneRed).Render("(expired)")
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
