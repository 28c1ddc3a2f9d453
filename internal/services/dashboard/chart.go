package dashboard

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/sentinel/internal/models"
)

const (
	chartWidth  = 900
	chartHeight = 400
)

// monthTicks labels x positions 1..n with labels.
func monthTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: l}
	}
	return ticks
}

func positions(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

func lakhsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1fL", f)
	}
	return ""
}

// renderLines draws one or more series sharing the same x labels.
func renderLines(title string, labels []string, series []Series, fill bool) ([]byte, error) {
	if len(labels) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(labels))
	}

	xValues := positions(len(labels))
	chartSeries := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return nil, fmt.Errorf("series %q has %d values for %d labels", s.Name, len(s.Values), len(labels))
		}
		style := chart.Style{
			StrokeColor: drawing.ColorFromHex(s.Color),
			StrokeWidth: 2.5,
		}
		if fill {
			style.FillColor = drawing.ColorFromHex(s.Color).WithAlpha(26)
		}
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xValues,
			YValues: s.Values,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: monthTicks(labels),
		},
		YAxis: chart.YAxis{
			ValueFormatter: lakhsFormatter,
		},
		Series: chartSeries,
	}

	if len(series) > 1 {
		graph.Elements = []chart.Renderable{
			chart.LegendLeft(&graph),
		}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderNetWorthChart renders the net worth history as a filled line.
// Returns raw PNG bytes.
func RenderNetWorthChart(s Series) ([]byte, error) {
	return renderLines("Net Worth", s.Labels, []Series{s}, true)
}

// RenderCashFlowChart renders income against expenses. All series must
// share the first series' labels.
func RenderCashFlowChart(series []Series) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no cash flow series")
	}
	return renderLines("Monthly Cash Flow", series[0].Labels, series, false)
}

// RenderAllocationChart renders the asset allocation as a pie.
func RenderAllocationChart(slices []Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("no allocation data")
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.0f%%", s.Label, s.Value),
			Value: s.Value,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("allocation has no positive values")
	}

	pie := chart.PieChart{
		Title:  "Asset Allocation",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTimelineChart renders a simulation's projected net worth.
func RenderTimelineChart(points []models.TimelinePoint) ([]byte, error) {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		values[i] = float64(p.NetWorth)
	}
	return renderLines("Projected Net Worth (Lakhs)", labels, []Series{{
		Name:   "Net Worth",
		Labels: labels,
		Values: values,
		Color:  "ef4444",
	}}, true)
}

// RenderPortfolioTab renders the chart behind one portfolio tab.
func RenderPortfolioTab(p PortfolioSection, tab string) ([]byte, error) {
	switch tab {
	case "", TabOverview:
		return RenderNetWorthChart(p.NetWorth)
	case TabAllocation:
		return RenderAllocationChart(p.Allocation)
	case TabCashFlow:
		return RenderCashFlowChart(p.CashFlow)
	}
	return nil, fmt.Errorf("unknown portfolio tab %q", tab)
}
