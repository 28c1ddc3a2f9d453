package dashboard

import "fmt"

const (
	OverviewTitle     = "Dashboard"
	RadarTitle        = "Swan Radar"
	RadarDescription  = "Visualizing your financial risk exposure"
	DefaultGreetingTo = "John"
)

// Greeting is the dashboard subtitle.
func Greeting(name string) string {
	if name == "" {
		name = DefaultGreetingTo
	}
	return fmt.Sprintf("Welcome back, %s. Here's your financial risk overview.", name)
}

// StatCard is a headline figure with its month-on-month change.
type StatCard struct {
	Title     string
	Value     string
	ChangePct float64
	Up        bool
	Tone      Tone
	Caption   string
}

// StatCards returns the net worth, income and expense cards.
func StatCards() []StatCard {
	const caption = "Compared to last month"
	return []StatCard{
		{Title: "Net Worth", Value: FormatINR(2456789), ChangePct: 12.5, Up: true, Tone: ToneGreen, Caption: caption},
		{Title: "Monthly Income", Value: FormatINR(185000), ChangePct: 5.2, Up: true, Tone: ToneGreen, Caption: caption},
		{Title: "Monthly Expenses", Value: FormatINR(95400), ChangePct: 2.1, Up: false, Tone: ToneRed, Caption: caption},
	}
}

// RiskLevel is one axis of the swan radar, scored 0-100.
type RiskLevel struct {
	Label string
	Level float64
	Color string
}

// SwanRadar returns the risk exposure levels.
func SwanRadar() []RiskLevel {
	return []RiskLevel{
		{Label: "Market Crash", Level: 65, Color: "ff6384"},
		{Label: "Inflation", Level: 42, Color: "36a2eb"},
		{Label: "Interest Rate", Level: 78, Color: "ffce56"},
		{Label: "Liquidity", Level: 30, Color: "4bc0c0"},
		{Label: "Geopolitical", Level: 56, Color: "9966ff"},
		{Label: "Regulatory", Level: 48, Color: "ff9f40"},
	}
}

// RadarTone colours a radar level.
func RadarTone(level float64) Tone {
	switch {
	case level >= 70:
		return ToneRed
	case level >= 50:
		return ToneOrange
	case level >= 40:
		return ToneYellow
	default:
		return ToneBlue
	}
}
