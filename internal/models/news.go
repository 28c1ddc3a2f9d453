package models

import "strings"

// NewsItem is a financial news story scored for portfolio impact.
type NewsItem struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt Timestamp `json:"published_at"`
	ImpactScore Float     `json:"impact_score"`
	Categories  []string  `json:"categories"`
}

func (n NewsItem) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("news", "title", "required")
	}
	return nil
}

// PolicyUpdate is a regulatory change tracked on the policy watch page.
// Categories drive tab membership; Sectors are display tags.
type PolicyUpdate struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Impact      string    `json:"impact"`
	Sectors     []string  `json:"sectors"`
	Categories  []string  `json:"categories"`
	Severity    Severity  `json:"severity"`
	PublishedAt Timestamp `json:"published_at"`
}

func (p PolicyUpdate) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("policy_update", "title", "required")
	}
	switch p.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return invalid("policy_update", "severity", "must be low, medium or high")
	}
	return nil
}
