package dashboard

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	PolicyTitle       = "Financial Policy Updates"
	PolicyDescription = "Recent regulatory changes and their potential impact on your investments"
	PolicyErrorFlag   = "Failed to fetch policy updates"
	PolicyWarning     = "Backend connection failed. Displaying demo policy updates."
	PolicyEmptyText   = "No policy updates in this category"
)

// PolicyAllTab is the unfiltered policy watch tab.
const PolicyAllTab = "all"

// PolicyCategories are the policy watch tabs in display order.
var PolicyCategories = []string{PolicyAllTab, "banking", "taxation", "markets", "crypto"}

// PolicyImpact is a headline figure of the policy impact analysis panel.
type PolicyImpact struct {
	Title  string
	Value  string
	Detail string
	Tone   Tone
}

// PolicySection is the filtered policy list plus the impact analysis panel.
type PolicySection struct {
	Section[models.PolicyUpdate]

	Category string
	Analysis []PolicyImpact
}

// FilterPolicies keeps updates tagged with category. An empty category
// keeps everything.
func FilterPolicies(items []models.PolicyUpdate, category string) []models.PolicyUpdate {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return items
	}
	var out []models.PolicyUpdate
	for _, p := range items {
		if slices.ContainsFunc(p.Categories, func(c string) bool { return strings.EqualFold(c, category) }) {
			out = append(out, p)
		}
	}
	return out
}

// PolicySource loads policy updates for one tab. Live updates on the "all"
// tab are shown unfiltered.
func (s *Service) PolicySource(category string) loader.Source[[]models.PolicyUpdate, models.PolicyUpdate] {
	return loader.Source[[]models.PolicyUpdate, models.PolicyUpdate]{
		Name:  "policy",
		Fetch: s.client.GetPolicyUpdates,
		Map: func(items []models.PolicyUpdate) []models.PolicyUpdate {
			if strings.EqualFold(strings.TrimSpace(category), PolicyAllTab) {
				return items
			}
			return FilterPolicies(items, category)
		},
		// the demo literals carry a curated "all" tag
		Fallback: func(time.Time) []models.PolicyUpdate {
			return FilterPolicies(FallbackPolicies(), category)
		},
		ErrorFlag: PolicyErrorFlag,
		Warning:   PolicyWarning,
	}
}

// PolicyUpdates loads the policy watch page for category.
func (s *Service) PolicyUpdates(ctx context.Context, category string) PolicySection {
	return PolicySection{
		Section: Section[models.PolicyUpdate]{
			Result:      loader.Load(ctx, s.PolicySource(category), s.LoadOptions()...),
			Title:       PolicyTitle,
			Description: PolicyDescription,
			EmptyText:   PolicyEmptyText,
		},
		Category: category,
		Analysis: PolicyAnalysis(),
	}
}

// PolicyAnalysis returns the impact analysis panel.
func PolicyAnalysis() []PolicyImpact {
	return []PolicyImpact{
		{Title: "Overall Impact", Value: "Moderate", Detail: "-1.2%", Tone: ToneAmber},
		{Title: "Most Affected", Value: "Home Loan", Detail: "+₹1,520/mo", Tone: ToneRed},
		{Title: "Recovery Time", Value: "18 months", Detail: "Estimated", Tone: ToneMuted},
	}
}

func policyDate(y int, m time.Month, d int) models.Timestamp {
	return models.Timestamp{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// FallbackPolicies is the demo policy watch list, newest first. Categories
// carry tab membership, so "all" holds only the four headline items.
func FallbackPolicies() []models.PolicyUpdate {
	return []models.PolicyUpdate{
		{
			ID:          "1",
			Title:       "RBI Increases Repo Rate by 25 bps",
			Summary:     "The Reserve Bank of India has increased the repo rate by 25 basis points to 5.75%, citing persistent inflationary pressures.",
			Impact:      "Your home loan EMI will increase by approximately ₹1,520 per month. Fixed deposit returns will improve slightly.",
			Sectors:     []string{"Banking", "Real Estate"},
			Categories:  []string{"all", "banking"},
			Severity:    models.SeverityHigh,
			PublishedAt: policyDate(2025, time.June, 15),
		},
		{
			ID:          "2",
			Title:       "SEBI Tightens Mutual Fund Expense Ratio Rules",
			Summary:     "SEBI has announced new regulations capping total expense ratios (TER) for equity mutual funds at 2.25%, down from the previous 2.5%.",
			Impact:      "Your annual mutual fund expenses will decrease by approximately ₹2,500, slightly improving long-term returns.",
			Sectors:     []string{"Mutual Funds", "Asset Management"},
			Categories:  []string{"all", "markets"},
			Severity:    models.SeverityMedium,
			PublishedAt: policyDate(2025, time.June, 10),
		},
		{
			ID:          "3",
			Title:       "New Crypto Taxation Framework Announced",
			Summary:     "The government has introduced a revised taxation framework for cryptocurrency transactions, reducing TDS from 1% to 0.1%.",
			Impact:      "Your crypto transaction costs will decrease, potentially saving you ₹9,000 annually based on your trading volume.",
			Sectors:     []string{"Cryptocurrency", "Taxation"},
			Categories:  []string{"all", "taxation", "crypto"},
			Severity:    models.SeverityMedium,
			PublishedAt: policyDate(2025, time.June, 5),
		},
		{
			ID:          "4",
			Title:       "Budget 2025: LTCG Tax Rate Increased",
			Summary:     "The Finance Minister has proposed increasing the Long Term Capital Gains tax rate from 10% to 12.5% for equity investments.",
			Impact:      "Your tax liability on equity investments held for over 1 year will increase by approximately ₹5,000 annually.",
			Sectors:     []string{"Taxation", "Equity Markets"},
			Categories:  []string{"all", "taxation"},
			Severity:    models.SeverityHigh,
			PublishedAt: policyDate(2025, time.May, 28),
		},
		{
			ID:          "5",
			Title:       "RBI Introduces New Digital Banking Guidelines",
			Summary:     "The RBI has released new guidelines for digital banking operations, focusing on enhanced security measures and customer protection.",
			Impact:      "Your bank may implement additional authentication steps for online transactions, improving security but adding friction.",
			Sectors:     []string{"Banking", "Digital Finance"},
			Categories:  []string{"banking"},
			Severity:    models.SeverityLow,
			PublishedAt: policyDate(2025, time.May, 20),
		},
		{
			ID:          "6",
			Title:       "SEBI Revises Circuit Breaker Mechanism",
			Summary:     "SEBI has revised the market-wide circuit breaker mechanism to trigger at 10%, 15%, and 20% movement in either direction for the NIFTY 50.",
			Impact:      "This may provide better protection against extreme market volatility, reducing potential losses during market crashes.",
			Sectors:     []string{"Equity Markets", "Trading"},
			Categories:  []string{"markets"},
			Severity:    models.SeverityLow,
			PublishedAt: policyDate(2025, time.May, 15),
		},
		{
			ID:          "7",
			Title:       "RBI Announces CBDC Pilot Expansion",
			Summary:     "The RBI has announced an expansion of its Central Bank Digital Currency (CBDC) pilot to include retail transactions across major cities.",
			Impact:      "This may provide an alternative to cryptocurrency for digital transactions with lower fees and regulatory protection.",
			Sectors:     []string{"Cryptocurrency", "Digital Finance"},
			Categories:  []string{"crypto"},
			Severity:    models.SeverityLow,
			PublishedAt: policyDate(2025, time.May, 8),
		},
	}
}
