package dashboard

import (
	"context"
	"time"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	PlaybookTitle       = "Your AI Defense Plan"
	PlaybookDescription = "Personalized recommendations based on your financial situation and risk profile"
	PlaybookErrorFlag   = "Failed to fetch playbooks"
	PlaybookWarning     = "Backend connection failed. Displaying demo defense plan."
	PlaybookEmptyText   = "No playbooks yet"
)

// HorizonLabels are the tab titles of each playbook horizon.
var HorizonLabels = map[string]string{
	models.HorizonImmediate: "Immediate Actions",
	models.HorizonShortTerm: "Short-term (30 days)",
	models.HorizonLongTerm:  "Long-term Strategy",
}

// Horizons lists the playbook horizons in tab order.
var Horizons = []string{models.HorizonImmediate, models.HorizonShortTerm, models.HorizonLongTerm}

// ResilienceScore is one bar of the risk mitigation progress panel.
type ResilienceScore struct {
	Label string
	Score float64
}

// PlaybookSection is the defense plan plus the mitigation progress panel.
type PlaybookSection struct {
	Section[models.Playbook]

	Resilience []ResilienceScore
}

// PlaybooksSource loads the user's playbooks, falling back to the demo plan.
func (s *Service) PlaybooksSource() loader.Source[[]models.Playbook, models.Playbook] {
	return loader.Source[[]models.Playbook, models.Playbook]{
		Name:  "playbook",
		Fetch: s.client.GetPlaybooks,
		Map:   loader.Items[models.Playbook],
		Fallback: func(now time.Time) []models.Playbook {
			return []models.Playbook{FallbackPlaybook(now)}
		},
		ErrorFlag: PlaybookErrorFlag,
		Warning:   PlaybookWarning,
	}
}

// Playbooks loads the defense playbook page.
func (s *Service) Playbooks(ctx context.Context) PlaybookSection {
	return PlaybookSection{
		Section: Section[models.Playbook]{
			Result:      loader.Load(ctx, s.PlaybooksSource(), s.LoadOptions()...),
			Title:       PlaybookTitle,
			Description: PlaybookDescription,
			EmptyText:   PlaybookEmptyText,
		},
		Resilience: ResilienceScores(),
	}
}

// ResilienceScores returns the mitigation progress bars; the first is the
// overall score.
func ResilienceScores() []ResilienceScore {
	return []ResilienceScore{
		{Label: "Overall Financial Resilience", Score: 65},
		{Label: "Emergency Preparedness", Score: 45},
		{Label: "Portfolio Diversification", Score: 72},
		{Label: "Income Security", Score: 58},
		{Label: "Debt Management", Score: 85},
	}
}

func action(id, horizon, title, desc, impact, effort, status string) models.PlaybookAction {
	return models.PlaybookAction{
		ID:          models.ID(id),
		Title:       title,
		Description: desc,
		Horizon:     horizon,
		Impact:      impact,
		Effort:      effort,
		Status:      status,
	}
}

// FallbackPlaybook is the demo defense plan.
func FallbackPlaybook(now time.Time) models.Playbook {
	const (
		imm  = models.HorizonImmediate
		st   = models.HorizonShortTerm
		lt   = models.HorizonLongTerm
		todo = models.ActionPending
		done = models.ActionCompleted
	)
	return models.Playbook{
		ID:          "demo",
		Title:       PlaybookTitle,
		Description: PlaybookDescription,
		CreatedAt:   models.Timestamp{Time: now},
		Actions: []models.PlaybookAction{
			action("1", imm, "Increase Emergency Fund",
				"Transfer ₹1,50,000 from your SBI savings account to your emergency fund to reach the 6-month expense target.",
				"High", "Medium", todo),
			action("2", imm, "Rebalance Portfolio",
				"Reduce tech sector exposure from 32% to 25% by selling ₹70,000 worth of tech mutual funds and reinvesting in defensive sectors.",
				"Medium", "Low", todo),
			action("3", imm, "Review Insurance Coverage",
				"Your health insurance covers only 60% of potential hospitalization costs. Consider increasing coverage by ₹5,00,000.",
				"High", "Low", todo),
			action("4", imm, "Reduce High-Interest Debt",
				"Pay off your credit card debt of ₹85,000 using part of your fixed deposit that's earning only 5.5% interest.",
				"High", "Medium", todo),
			action("5", st, "Diversify Income Sources",
				"Your income is 92% dependent on your primary job. Explore freelance opportunities in your field to create an additional income stream.",
				"Medium", "High", todo),
			action("6", st, "Optimize Tax Strategy",
				"You're currently paying ₹12,000 more in taxes than necessary. Schedule a consultation with a tax advisor to optimize your tax planning.",
				"Medium", "Medium", todo),
			action("7", st, "Review Recurring Expenses",
				"Your subscription services cost ₹8,500 monthly. Audit and eliminate unused subscriptions to reduce monthly expenses.",
				"Low", "Low", done),
			action("8", st, "Create a Will and Estate Plan",
				"You don't have a formal estate plan. Consult with a legal advisor to create a will and designate beneficiaries for your assets.",
				"Medium", "Medium", todo),
			action("9", lt, "Increase Retirement Contributions",
				"You're currently saving 12% of your income for retirement, below the recommended 15%. Increase your monthly NPS contribution by ₹5,000.",
				"High", "Low", todo),
			action("10", lt, "Diversify Internationally",
				"Your portfolio is 95% invested in Indian markets. Allocate 20% to international funds to reduce country-specific risk.",
				"Medium", "Medium", todo),
			action("11", lt, "Develop Passive Income",
				"Invest ₹10,00,000 in dividend-yielding stocks and REITs to create a passive income stream of approximately ₹60,000 annually.",
				"High", "High", todo),
			action("12", lt, "Skill Development",
				"Invest in courses to enhance your professional skills, increasing your market value and income potential by an estimated 15-20%.",
				"Medium", "High", todo),
		},
	}
}
