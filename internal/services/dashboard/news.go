package dashboard

import (
	"context"
	"time"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

const (
	NewsTitle              = "Market News"
	NewsDescription        = "Latest financial news that may impact your portfolio"
	NewsFallbackDescriptor = "Backend connection failed - showing demo news"
	NewsLoadingText        = "Loading latest financial news..."
	NewsWarning            = "Backend connection failed. Displaying demo news."
	NewsErrorFlag          = "Failed to fetch news"
	NewsEmptyText          = "No news available at this time"
)

// NewsSource is the fetch-or-fallback definition of the news feed.
func (s *Service) NewsSource() loader.Source[[]models.NewsItem, models.NewsItem] {
	limit := s.newsLimit
	return loader.Source[[]models.NewsItem, models.NewsItem]{
		Name: "news",
		Fetch: func(ctx context.Context) ([]models.NewsItem, error) {
			return s.client.GetNews(ctx, limit)
		},
		Map:       loader.Items[models.NewsItem],
		Fallback:  FallbackNews,
		ErrorFlag: NewsErrorFlag,
		Warning:   NewsWarning,
	}
}

// News loads the news feed.
func (s *Service) News(ctx context.Context) Section[models.NewsItem] {
	return NewsSection(loader.Load(ctx, s.NewsSource(), s.LoadOptions()...))
}

// NewsSection wraps a settled news result; the description changes when
// demo news is shown.
func NewsSection(res loader.Result[models.NewsItem]) Section[models.NewsItem] {
	desc := NewsDescription
	if res.Degraded() {
		desc = NewsFallbackDescriptor
	}
	return Section[models.NewsItem]{
		Result:      res,
		Title:       NewsTitle,
		Description: desc,
		EmptyText:   NewsEmptyText,
	}
}

// FallbackNews is the demo news feed, aged relative to now.
func FallbackNews(now time.Time) []models.NewsItem {
	return []models.NewsItem{
		{
			ID:          "1",
			Title:       "RBI Raises Interest Rates by 25 bps",
			Summary:     "The Reserve Bank of India has increased the repo rate by 25 basis points to 5.75%, potentially affecting your home loan and fixed deposits.",
			Source:      "RBI",
			URL:         "#",
			PublishedAt: models.Timestamp{Time: now.Add(-2 * time.Hour)},
			ImpactScore: 8.5,
			Categories:  []string{"Banking", "Policy"},
		},
		{
			ID:          "2",
			Title:       "Tech Stocks Down 3% on Regulatory Concerns",
			Summary:     "Technology sector experiencing a selloff due to new regulatory proposals. Your portfolio has a 15% exposure to this sector.",
			Source:      "Market Watch",
			URL:         "#",
			PublishedAt: models.Timestamp{Time: now.Add(-5 * time.Hour)},
			ImpactScore: 6.2,
			Categories:  []string{"Technology", "Markets"},
		},
		{
			ID:          "3",
			Title:       "Gold Prices Rally Amid Global Uncertainty",
			Summary:     "Gold prices have increased by 2% today as investors seek safe-haven assets. Your portfolio has a 7% allocation to gold.",
			Source:      "Commodity News",
			URL:         "#",
			PublishedAt: models.Timestamp{Time: now.Add(-24 * time.Hour)},
			ImpactScore: 4.8,
			Categories:  []string{"Commodities", "Gold"},
		},
	}
}
