package services

import (
	"context"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"github.com/lotodata/megasena-backend/pkg/scraper"
	"go.uber.org/zap"
)

// ScrapeSourceURL is the provenance tag stored with scraped results.
const ScrapeSourceURL = "https://loterias.caixa.gov.br/Paginas/Mega-Sena.aspx"

type scrapeService struct {
	scraper PageScraper
	results repositories.ResultRepository // nil when the store is unavailable
	status  repositories.StatusRepository // nil when the store is unavailable
	logger  *zap.Logger
}

// NewScrapeService creates the scrape-fallback orchestrator.
func NewScrapeService(pageScraper PageScraper, results repositories.ResultRepository, status repositories.StatusRepository, logger *zap.Logger) ScrapeService {
	return &scrapeService{
		scraper: pageScraper,
		results: results,
		status:  status,
		logger:  logger,
	}
}

// GetLatestResult scrapes the results page and stores the outcome,
// bracketing the write with running/complete status-log entries. Store
// failures never fail the scrape.
func (s *scrapeService) GetLatestResult(ctx context.Context) (*scraper.Result, error) {
	res, err := s.scraper.FetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	if s.results != nil {
		s.appendStatus(ctx, "running", models.Metadata{"tipo": "megasena"})

		if _, err := s.results.Save(ctx, ScrapeSourceURL, res, models.Metadata{
			"fonte": models.SourceScrapeEndpoint,
		}); err != nil {
			s.logger.Warn("failed to store scraped result", zap.Error(err))
		}

		s.appendStatus(ctx, "complete", models.Metadata{
			"tipo":    "megasena",
			"sucesso": res.Exception == "",
		})
	}

	return res, nil
}

func (s *scrapeService) appendStatus(ctx context.Context, status string, metadata models.Metadata) {
	if s.status == nil {
		return
	}
	if _, err := s.status.Append(ctx, status, metadata); err != nil {
		s.logger.Warn("failed to append status entry",
			zap.String("status", status), zap.Error(err))
	}
}
