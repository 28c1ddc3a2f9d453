package models

import "strings"

// Severity grades a risk alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Known reports whether s is one of the four defined grades.
func (s Severity) Known() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Alert is a risk notification shown on the alert timeline.
// Unknown severities are kept as-is and rendered neutral.
type Alert struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Category  string    `json:"category"`
	CreatedAt Timestamp `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

func (a Alert) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("alert", "title", "required")
	}
	return nil
}

// RiskFactor is a single scored risk dimension.
type RiskFactor struct {
	Name  string `json:"name"`
	Score Float  `json:"score"`
}

// RiskAssessment is the backend's risk evaluation of one portfolio.
type RiskAssessment struct {
	ID          ID           `json:"id"`
	PortfolioID ID           `json:"portfolio_id"`
	RiskScore   Float        `json:"risk_score"`
	RiskLevel   string       `json:"risk_level"`
	Factors     []RiskFactor `json:"factors,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	AssessedAt  Timestamp    `json:"assessed_at"`
}

func (r RiskAssessment) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return invalid("risk_assessment", "risk_score", "must be within 0-100")
	}
	return nil
}
