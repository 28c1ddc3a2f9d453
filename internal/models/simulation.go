package models

import (
	"fmt"
	"slices"
	"strings"
)

// Scenario identifiers offered by the disaster simulator.
const (
	ScenarioMarketCrash         = "market-crash"
	ScenarioInflationSpike      = "inflation-spike"
	ScenarioJobLoss             = "job-loss"
	ScenarioHousingCrash        = "housing-crash"
	ScenarioCurrencyDevaluation = "currency-devaluation"
	ScenarioCustom              = "custom"
)

// SimulationDurations are the selectable horizons in months.
var SimulationDurations = []int{3, 6, 12, 24}

// SimulationSeverities are the selectable shock intensities.
var SimulationSeverities = []string{"mild", "medium", "severe", "extreme"}

// Scenario is a predefined black swan event template.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s Scenario) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return invalid("scenario", "id", "required")
	}
	return nil
}

// CustomShock holds the slider values of a custom scenario, in percent.
type CustomShock struct {
	StockMarketImpact  float64 `json:"stock_market_impact"`
	RealEstateImpact   float64 `json:"real_estate_impact"`
	InflationRate      float64 `json:"inflation_rate"`
	InterestRateChange float64 `json:"interest_rate_change"`
	IncomeReduction    float64 `json:"income_reduction"`
}

// DefaultCustomShock returns the simulator's initial slider positions.
func DefaultCustomShock() CustomShock {
	return CustomShock{
		StockMarketImpact:  30,
		RealEstateImpact:   15,
		InflationRate:      8,
		InterestRateChange: 2,
		IncomeReduction:    20,
	}
}

func (c CustomShock) Validate() error {
	bounded := []struct {
		field    string
		v        float64
		min, max float64
	}{
		{"stock_market_impact", c.StockMarketImpact, 0, 100},
		{"real_estate_impact", c.RealEstateImpact, 0, 100},
		{"inflation_rate", c.InflationRate, 0, 30},
		{"interest_rate_change", c.InterestRateChange, -5, 10},
		{"income_reduction", c.IncomeReduction, 0, 100},
	}
	for _, b := range bounded {
		if b.v < b.min || b.v > b.max {
			return invalid("custom_shock", b.field, fmt.Sprintf("must be within %g..%g", b.min, b.max))
		}
	}
	return nil
}

// SimulationRequest is the JSON body for /simulation/run.
type SimulationRequest struct {
	ScenarioType   string       `json:"scenario_type"`
	DurationMonths int          `json:"duration_months"`
	Severity       string       `json:"severity,omitempty"`
	PortfolioID    string       `json:"portfolio_id,omitempty"`
	Custom         *CustomShock `json:"custom,omitempty"`
}

func (r SimulationRequest) Validate() error {
	if strings.TrimSpace(r.ScenarioType) == "" {
		return invalid("simulation", "scenario_type", "required")
	}
	if !slices.Contains(SimulationDurations, r.DurationMonths) {
		return invalid("simulation", "duration_months", "must be one of 3, 6, 12, 24")
	}
	if r.Severity != "" && !slices.Contains(SimulationSeverities, r.Severity) {
		return invalid("simulation", "severity", "unknown severity "+r.Severity)
	}
	if r.ScenarioType == ScenarioCustom {
		if r.Custom == nil {
			return invalid("simulation", "custom", "required for custom scenarios")
		}
		return r.Custom.Validate()
	}
	return nil
}

// ImpactMetric compares a financial indicator before and after the shock,
// indexed to 100.
type ImpactMetric struct {
	Label  string `json:"label"`
	Before Float  `json:"before"`
	After  Float  `json:"after"`
}

// TimelinePoint is projected net worth at one step of the scenario.
type TimelinePoint struct {
	Label    string `json:"label"`
	NetWorth Float  `json:"net_worth"`
}

// AffectedAsset is an asset class hit by the scenario. Severity is one of
// high, medium, low or positive.
type AffectedAsset struct {
	Name     string `json:"name"`
	Impact   string `json:"impact"`
	Value    string `json:"value"`
	Severity string `json:"severity"`
}

// SimulationResult is the outcome of a disaster simulation.
type SimulationResult struct {
	ID                   ID              `json:"id"`
	ScenarioType         string          `json:"scenario_type"`
	Title                string          `json:"title"`
	DurationMonths       int             `json:"duration_months"`
	NetWorthImpactPct    Float           `json:"net_worth_impact_pct"`
	NetWorthImpactAmount Float           `json:"net_worth_impact_amount"`
	SurvivalMonths       Float           `json:"survival_months"`
	SurvivalStatus       string          `json:"survival_status"`
	RecoveryYears        Float           `json:"recovery_years"`
	ImpactMetrics        []ImpactMetric  `json:"impact_metrics"`
	Timeline             []TimelinePoint `json:"timeline"`
	AffectedAssets       []AffectedAsset `json:"affected_assets"`
	CreatedAt            Timestamp       `json:"created_at"`
}

func (r SimulationResult) Validate() error {
	if strings.TrimSpace(r.ScenarioType) == "" {
		return invalid("simulation_result", "scenario_type", "required")
	}
	if r.DurationMonths < 0 {
		return invalid("simulation_result", "duration_months", "must not be negative")
	}
	return nil
}
