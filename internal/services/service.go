package services

import (
	"context"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/lotodata/megasena-backend/pkg/scraper"
)

// DrawFetcher retrieves raw draw payloads from the upstream source.
// *caixa.Client satisfies it.
type DrawFetcher interface {
	FetchDraw(ctx context.Context, drawNumber *int) (*caixa.DrawResponse, error)
}

// PageScraper retrieves the current draw from the public results page.
// *scraper.Scraper satisfies it.
type PageScraper interface {
	FetchLatest(ctx context.Context) (*scraper.Result, error)
}

// DrawService is the cache-first draw retrieval core.
type DrawService interface {
	// GetDraw returns one draw, serving from cache when possible. A nil
	// drawNumber means the most recent draw.
	GetDraw(ctx context.Context, drawNumber *int) (*models.DrawRecord, error)

	// GetLatestDraws returns a summary of the last N draws, most recent
	// first, storing newly fetched summaries along the way.
	GetLatestDraws(ctx context.Context, lastN int) (*models.LatestDrawsResult, error)
}

// StatisticsService computes aggregates over a rolling window of draws.
type StatisticsService interface {
	GetStatistics(ctx context.Context, window int) (*models.StatisticsSnapshot, error)
}

// ImportService runs bounded batch imports of draw ranges.
type ImportService interface {
	ImportRange(ctx context.Context, start int, end *int) (*models.ImportResult, error)
}

// HistoryService lists stored cache entries.
type HistoryService interface {
	GetHistory(ctx context.Context, limit int) (*models.HistoryResult, error)
}

// ScrapeService runs the scrape fallback and records its status.
type ScrapeService interface {
	GetLatestResult(ctx context.Context) (*scraper.Result, error)
}
