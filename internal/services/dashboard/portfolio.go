package dashboard

import (
	"context"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	PortfolioTitle              = "Portfolio Summary"
	PortfolioDescription        = "Overview of your financial portfolio and performance"
	PortfolioFallbackDescriptor = "Using demo data - connect to backend for real portfolio data"
	PortfolioLoadingText        = "Loading portfolio data..."
	PortfolioEmptyText          = "No portfolios yet"
	PortfolioErrorFlag          = "Failed to fetch portfolio data"
	PortfolioWarning            = "Backend connection failed. Displaying demo data. Error: " + PortfolioErrorFlag
)

// Portfolio chart tabs.
const (
	TabOverview   = "overview"
	TabAllocation = "allocation"
	TabCashFlow   = "cashflow"
)

// PortfolioTabs lists the chart tabs in display order.
var PortfolioTabs = []string{TabOverview, TabAllocation, TabCashFlow}

// Months labels the monthly chart series.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Slice is one wedge of a proportional chart.
type Slice struct {
	Label string
	Value float64
	Color string // hex, no leading '#'
}

// Series is a labelled sequence of values.
type Series struct {
	Name   string
	Labels []string
	Values []float64
	Color  string
}

// PortfolioSection is the portfolio summary: the fetched portfolios plus
// chart datasets that are static in both the live and the degraded state.
type PortfolioSection struct {
	Section[models.Portfolio]

	Allocation []Slice
	NetWorth   Series
	CashFlow   []Series
}

// PortfolioSource is the fetch-or-fallback definition of the portfolio
// summary. There is no fallback list: failure shows no portfolios and the
// static charts.
func (s *Service) PortfolioSource() loader.Source[[]models.Portfolio, models.Portfolio] {
	return loader.Source[[]models.Portfolio, models.Portfolio]{
		Name:      "portfolio",
		Fetch:     s.client.GetPortfolios,
		Map:       loader.Items[models.Portfolio],
		ErrorFlag: PortfolioErrorFlag,
		Warning:   PortfolioWarning,
	}
}

// Portfolio loads the portfolio summary.
func (s *Service) Portfolio(ctx context.Context) PortfolioSection {
	return NewPortfolioSection(loader.Load(ctx, s.PortfolioSource(), s.LoadOptions()...))
}

// NewPortfolioSection wraps a settled portfolio result.
func NewPortfolioSection(res loader.Result[models.Portfolio]) PortfolioSection {
	desc := PortfolioDescription
	if res.Degraded() {
		desc = PortfolioFallbackDescriptor
	}
	return PortfolioSection{
		Section: Section[models.Portfolio]{
			Result:      res,
			Title:       PortfolioTitle,
			Description: desc,
			EmptyText:   PortfolioEmptyText,
		},
		Allocation: AssetAllocation(),
		NetWorth:   NetWorthHistory(),
		CashFlow:   MonthlyCashFlow(),
	}
}

// TotalValue sums the value of the loaded portfolios.
func (p PortfolioSection) TotalValue() float64 {
	var total float64
	for _, pf := range p.Items {
		total += float64(pf.TotalValue)
	}
	return total
}

// AssetAllocation is the allocation breakdown in percent.
func AssetAllocation() []Slice {
	return []Slice{
		{Label: "Stocks", Value: 45, Color: "36a2eb"},
		{Label: "Bonds", Value: 20, Color: "ffce56"},
		{Label: "Real Estate", Value: 15, Color: "4bc0c0"},
		{Label: "Gold", Value: 10, Color: "ff9f40"},
		{Label: "Cash", Value: 8, Color: "9966ff"},
		{Label: "Others", Value: 2, Color: "ff6384"},
	}
}

// NetWorthHistory is monthly net worth in lakhs of rupees.
func NetWorthHistory() Series {
	return Series{
		Name:   "Net Worth (₹ Lakhs)",
		Labels: Months,
		Values: []float64{18.2, 19.5, 20.1, 19.8, 21.2, 22.5, 23.1, 22.8, 23.5, 24.2, 24.8, 24.6},
		Color:  "3b82f6",
	}
}

// MonthlyCashFlow is monthly income and expenses in lakhs of rupees.
func MonthlyCashFlow() []Series {
	return []Series{
		{
			Name:   "Income",
			Labels: Months,
			Values: []float64{1.65, 1.68, 1.7, 1.72, 1.75, 1.78, 1.8, 1.82, 1.85, 1.85, 1.85, 1.85},
			Color:  "22c55e",
		},
		{
			Name:   "Expenses",
			Labels: Months,
			Values: []float64{0.92, 0.88, 0.95, 0.91, 0.93, 0.97, 0.94, 0.92, 0.96, 0.95, 0.94, 0.95},
			Color:  "ef4444",
		},
	}
}
