package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	SimulatorTitle       = "Disaster Simulator"
	SimulationErrorFlag  = "Failed to run simulation"
	SimulationWarning    = "Backend connection failed. Displaying demo simulation results."
	ScenariosErrorFlag   = "Failed to fetch scenarios"
	ScenariosWarning     = "Backend connection failed. Displaying built-in scenarios."
	SimulationEmptyText  = "No simulation results"
	simulationResultText = "Estimated impact on your financial situation over %d months"
)

// ScenarioCatalogue lists the predefined scenarios in menu order.
func ScenarioCatalogue() []models.Scenario {
	return []models.Scenario{
		{ID: models.ScenarioMarketCrash, Name: "Market Crash (-30%)"},
		{ID: models.ScenarioInflationSpike, Name: "Inflation Spike (12%)"},
		{ID: models.ScenarioJobLoss, Name: "Job Loss (6 months)"},
		{ID: models.ScenarioHousingCrash, Name: "Housing Market Crash (-25%)"},
		{ID: models.ScenarioCurrencyDevaluation, Name: "Currency Devaluation (-20%)"},
	}
}

// ScenarioLabel returns the menu label of a scenario id, or the id itself.
func ScenarioLabel(id string) string {
	for _, sc := range ScenarioCatalogue() {
		if sc.ID == id {
			return sc.Name
		}
	}
	if id == models.ScenarioCustom {
		return "Custom Scenario"
	}
	return id
}

// ScenariosSource loads scenario templates, falling back to the catalogue.
func (s *Service) ScenariosSource() loader.Source[[]models.Scenario, models.Scenario] {
	return loader.Source[[]models.Scenario, models.Scenario]{
		Name:      "scenarios",
		Fetch:     s.client.GetScenarios,
		Map:       loader.Items[models.Scenario],
		Fallback:  func(time.Time) []models.Scenario { return ScenarioCatalogue() },
		ErrorFlag: ScenariosErrorFlag,
		Warning:   ScenariosWarning,
	}
}

// Scenarios loads the scenario templates.
func (s *Service) Scenarios(ctx context.Context) Section[models.Scenario] {
	return Section[models.Scenario]{
		Result:    loader.Load(ctx, s.ScenariosSource(), s.LoadOptions()...),
		Title:     "Scenarios",
		EmptyText: "No scenarios available",
	}
}

// SimulationSection is the outcome of one simulation run.
type SimulationSection struct {
	Section[models.SimulationResult]
}

// Outcome returns the simulation result, or nil when none was produced.
func (s SimulationSection) Outcome() *models.SimulationResult {
	return firstOf(s.Items)
}

// SimulationSource runs req against the backend, falling back to the demo
// market crash result.
func (s *Service) SimulationSource(req models.SimulationRequest) loader.Source[*models.SimulationResult, models.SimulationResult] {
	return loader.Source[*models.SimulationResult, models.SimulationResult]{
		Name: "simulation",
		Fetch: func(ctx context.Context) (*models.SimulationResult, error) {
			return s.client.RunSimulation(ctx, req)
		},
		Map: func(r *models.SimulationResult) []models.SimulationResult {
			if r == nil {
				return nil
			}
			return []models.SimulationResult{*r}
		},
		Fallback: func(now time.Time) []models.SimulationResult {
			return []models.SimulationResult{FallbackSimulation(now)}
		},
		ErrorFlag: SimulationErrorFlag,
		Warning:   SimulationWarning,
	}
}

// Simulation validates req and runs it. Only an invalid request is an
// error; backend failures degrade to the demo result.
func (s *Service) Simulation(ctx context.Context, req models.SimulationRequest) (SimulationSection, error) {
	if err := req.Validate(); err != nil {
		return SimulationSection{}, fmt.Errorf("invalid simulation request: %w", err)
	}
	res := loader.Load(ctx, s.SimulationSource(req), s.LoadOptions()...)

	title := "Simulation Results: " + ScenarioLabel(req.ScenarioType)
	months := req.DurationMonths
	if out := firstOf(res.Items); out != nil {
		if out.Title != "" {
			title = out.Title
		}
		if out.DurationMonths > 0 {
			months = out.DurationMonths
		}
	}

	return SimulationSection{Section: Section[models.SimulationResult]{
		Result:      res,
		Title:       title,
		Description: fmt.Sprintf(simulationResultText, months),
		EmptyText:   SimulationEmptyText,
	}}, nil
}

func firstOf[T any](items []T) *T {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// FallbackSimulation is the demo six-month market crash result.
func FallbackSimulation(now time.Time) models.SimulationResult {
	return models.SimulationResult{
		ID:                   "demo",
		ScenarioType:         models.ScenarioMarketCrash,
		Title:                "Simulation Results: Market Crash (-30%)",
		DurationMonths:       6,
		NetWorthImpactPct:    -30,
		NetWorthImpactAmount: -737037,
		SurvivalMonths:       4.2,
		SurvivalStatus:       "Critical",
		RecoveryYears:        3.5,
		ImpactMetrics: []models.ImpactMetric{
			{Label: "Net Worth", Before: 100, After: 70},
			{Label: "Liquidity", Before: 100, After: 45},
			{Label: "Income", Before: 100, After: 80},
			{Label: "Expenses", Before: 100, After: 115},
			{Label: "Debt Ratio", Before: 100, After: 130},
		},
		Timeline: []models.TimelinePoint{
			{Label: "Month 1", NetWorth: 24.6},
			{Label: "Month 2", NetWorth: 22.1},
			{Label: "Month 3", NetWorth: 20.5},
			{Label: "Month 4", NetWorth: 19.2},
			{Label: "Month 5", NetWorth: 18.4},
			{Label: "Month 6", NetWorth: 17.2},
		},
		AffectedAssets: []models.AffectedAsset{
			{Name: "Equity Mutual Funds", Impact: "-35%", Value: "₹4,20,000", Severity: "high"},
			{Name: "Real Estate", Impact: "-18%", Value: "₹3,60,000", Severity: "medium"},
			{Name: "Corporate Bonds", Impact: "-12%", Value: "₹72,000", Severity: "medium"},
			{Name: "Bank Deposits", Impact: "-5%", Value: "₹25,000", Severity: "low"},
			{Name: "Gold", Impact: "+8%", Value: "+₹32,000", Severity: "positive"},
		},
		CreatedAt: models.Timestamp{Time: now},
	}
}
