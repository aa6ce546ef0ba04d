package services

import (
	"context"
	"time"

	"github.com/lotodata/megasena-backend/internal/apperrors"
	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultMaxBatchSize = 100
	defaultImportDelay  = 500 * time.Millisecond
)

type importService struct {
	draws    DrawService
	results  repositories.ResultRepository // nil when the store is unavailable
	logger   *zap.Logger
	maxBatch int
	limiter  *rate.Limiter
}

// NewImportService creates the batch importer. delay bounds the upstream
// request rate between imported draws.
func NewImportService(draws DrawService, results repositories.ResultRepository, logger *zap.Logger, maxBatch int, delay time.Duration) ImportService {
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatchSize
	}
	if delay <= 0 {
		delay = defaultImportDelay
	}
	return &importService{
		draws:    draws,
		results:  results,
		logger:   logger,
		maxBatch: maxBatch,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
	}
}

// ImportRange imports every draw in the inclusive range, skipping draws the
// store already holds. Inverted bounds are swapped; a nil end resolves to the
// latest draw. Ranges wider than the ceiling fail before any work. A per-item
// failure never aborts the batch.
func (s *importService) ImportRange(ctx context.Context, start int, end *int) (*models.ImportResult, error) {
	if s.results == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	if start <= 0 {
		return nil, apperrors.NewValidation("start draw number must be positive")
	}

	to := 0
	if end != nil {
		if *end <= 0 {
			return nil, apperrors.NewValidation("end draw number must be positive")
		}
		to = *end
	} else {
		latest, err := s.draws.GetDraw(ctx, nil)
		if err != nil {
			return nil, err
		}
		to = latest.Concurso
	}

	from := start
	if from > to {
		from, to = to, from
	}
	if to-from > s.maxBatch {
		return nil, apperrors.NewValidation("a maximum of %d draws can be imported per batch", s.maxBatch)
	}

	result := &models.ImportResult{
		Status:    "success",
		Concursos: []models.ImportItem{},
		Erros:     []models.ImportError{},
	}
	for n := from; n <= to; n++ {
		exists, err := s.results.DrawExists(ctx, n)
		if err != nil {
			// Assume absent so a flaky store never blocks the import.
			s.logger.Warn("existence check failed, importing anyway",
				zap.Int("concurso", n), zap.Error(err))
			exists = false
		}
		if exists {
			result.JaExistem++
			result.Concursos = append(result.Concursos, models.ImportItem{
				Concurso: n,
				Status:   models.ImportStatusExists,
			})
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		n := n
		if _, err := s.draws.GetDraw(ctx, &n); err != nil {
			s.logger.Warn("failed to import draw", zap.Int("concurso", n), zap.Error(err))
			result.ComErro++
			result.Erros = append(result.Erros, models.ImportError{
				Concurso: n,
				Erro:     err.Error(),
			})
			continue
		}

		result.Importados++
		result.Concursos = append(result.Concursos, models.ImportItem{
			Concurso: n,
			Status:   models.ImportStatusImported,
		})
	}

	s.logger.Info("import batch finished",
		zap.Int("importados", result.Importados),
		zap.Int("ja_existem", result.JaExistem),
		zap.Int("com_erro", result.ComErro))
	return result, nil
}
