package dashboard

import (
	"context"
	"time"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	AlertsTitle       = "Latest Alerts"
	AlertsDescription = "Recent financial risk notifications"
	AlertsWarning     = "Backend connection failed. Displaying demo alerts."
	AlertsErrorFlag   = "Failed to fetch alerts"
	AlertsEmptyText   = "No alerts at this time"
)

// AlertsSource is the fetch-or-fallback definition of the alert timeline.
func (s *Service) AlertsSource() loader.Source[[]models.Alert, models.Alert] {
	return loader.Source[[]models.Alert, models.Alert]{
		Name:      "alerts",
		Fetch:     s.client.GetAlerts,
		Map:       loader.Items[models.Alert],
		Fallback:  FallbackAlerts,
		ErrorFlag: AlertsErrorFlag,
		Warning:   AlertsWarning,
	}
}

// Alerts loads the alert timeline.
func (s *Service) Alerts(ctx context.Context) Section[models.Alert] {
	return AlertsSection(loader.Load(ctx, s.AlertsSource(), s.LoadOptions()...))
}

// AlertsSection wraps a settled alerts result with its heading text.
func AlertsSection(res loader.Result[models.Alert]) Section[models.Alert] {
	return Section[models.Alert]{
		Result:      res,
		Title:       AlertsTitle,
		Description: AlertsDescription,
		EmptyText:   AlertsEmptyText,
	}
}

// FallbackAlerts is the demo alert timeline, aged relative to now.
func FallbackAlerts(now time.Time) []models.Alert {
	return []models.Alert{
		{
			ID:        "1",
			Title:     "Market Volatility Alert",
			Message:   "Increased volatility detected in tech sector",
			Severity:  models.SeverityMedium,
			Category:  "market",
			CreatedAt: models.Timestamp{Time: now.Add(-2 * time.Hour)},
		},
		{
			ID:        "2",
			Title:     "Portfolio Rebalancing Needed",
			Message:   "Your portfolio allocation has drifted from target",
			Severity:  models.SeverityLow,
			Category:  "portfolio",
			CreatedAt: models.Timestamp{Time: now.Add(-6 * time.Hour)},
		},
		{
			ID:        "3",
			Title:     "Interest Rate Change",
			Message:   "RBI has announced repo rate increase",
			Severity:  models.SeverityHigh,
			Category:  "policy",
			CreatedAt: models.Timestamp{Time: now.Add(-24 * time.Hour)},
			IsRead:    true,
		},
	}
}
