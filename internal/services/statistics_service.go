package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// StatisticsNamespace is the url key under which snapshots are stored.
const StatisticsNamespace = "megasena_estatisticas"

type statisticsService struct {
	draws         DrawService
	results       repositories.ResultRepository // nil when the store is unavailable
	logger        *zap.Logger
	defaultWindow int
}

// NewStatisticsService creates the statistics engine.
func NewStatisticsService(draws DrawService, results repositories.ResultRepository, logger *zap.Logger, defaultWindow int) StatisticsService {
	if defaultWindow <= 0 {
		defaultWindow = 10
	}
	return &statisticsService{
		draws:         draws,
		results:       results,
		logger:        logger,
		defaultWindow: defaultWindow,
	}
}

// GetStatistics returns the aggregate over the last window draws. Non-positive
// windows silently clamp to the default. A cached snapshot for the exact
// (latest draw, window) key short-circuits the computation.
func (s *statisticsService) GetStatistics(ctx context.Context, window int) (*models.StatisticsSnapshot, error) {
	if window <= 0 {
		window = s.defaultWindow
	}

	latest, err := s.draws.GetDraw(ctx, nil)
	if err != nil {
		return nil, err
	}
	last := latest.Concurso

	if snap := s.lookupSnapshot(ctx, last, window); snap != nil {
		s.logger.Debug("statistics served from cache",
			zap.Int("ultimo_concurso", last), zap.Int("janela", window))
		return snap, nil
	}

	snap := s.compute(ctx, last, window)
	s.persistSnapshot(ctx, snap, last, window)
	return snap, nil
}

func (s *statisticsService) compute(ctx context.Context, last, window int) *models.StatisticsSnapshot {
	first := last - window + 1
	if first < 1 {
		first = 1
	}

	counts := make(map[string]int, models.DezenaMax)
	for i := models.DezenaMin; i <= models.DezenaMax; i++ {
		counts[fmt.Sprintf("%02d", i)] = 0
	}
	totals := make(map[string]int, len(models.KnownTiers))
	for _, tier := range models.KnownTiers {
		totals[tier] = 0
	}

	analisados := 0
	var firstSeen, lastSeen *int
	for n := first; n <= last; n++ {
		n := n
		rec, err := s.draws.GetDraw(ctx, &n)
		if err != nil {
			// Partial windows are accepted; the draw is skipped silently
			// beyond this log line.
			s.logger.Warn("skipping draw in statistics window",
				zap.Int("concurso", n), zap.Error(err))
			continue
		}

		analisados++
		if firstSeen == nil {
			v := n
			firstSeen = &v
		}
		v := n
		lastSeen = &v

		for _, dezena := range rec.Dezenas {
			if _, ok := counts[dezena]; ok {
				counts[dezena]++
			}
		}
		for tier, prize := range rec.Premiacao {
			if _, ok := totals[tier]; ok {
				totals[tier] += prize.Ganhadores
			}
		}
	}

	// Single descending sort; ties keep the ascending numeric input order.
	freqs := make([]models.NumberFrequency, 0, models.DezenaMax)
	for i := models.DezenaMin; i <= models.DezenaMax; i++ {
		dezena := fmt.Sprintf("%02d", i)
		freqs = append(freqs, models.NumberFrequency{Dezena: dezena, Frequencia: counts[dezena]})
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Frequencia > freqs[j].Frequencia
	})

	top := freqs
	if len(top) > 10 {
		top = top[:10]
	}
	bottom := freqs
	if len(bottom) > 10 {
		bottom = bottom[len(bottom)-10:]
	}

	return &models.StatisticsSnapshot{
		ConcursosAnalisados:   analisados,
		Periodo:               models.StatisticsPeriod{PrimeiroConcurso: firstSeen, UltimoConcurso: lastSeen},
		DezenasMaisSorteadas:  top,
		DezenasMenosSorteadas: bottom,
		TotalGanhadores:       totals,
	}
}

// lookupSnapshot retrieves a cached snapshot and validates its shape. A
// snapshot that does not decode into the expected contract is treated as a
// miss, never as an error.
func (s *statisticsService) lookupSnapshot(ctx context.Context, last, window int) *models.StatisticsSnapshot {
	if s.results == nil {
		return nil
	}

	entry, err := s.results.FindStatistics(ctx, StatisticsNamespace, last, window)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn("statistics lookup failed", zap.Error(err))
		}
		return nil
	}

	var snap models.StatisticsSnapshot
	if err := entry.DecodeConteudo(&snap); err != nil {
		s.logger.Warn("cached statistics have an unusable shape, recomputing",
			zap.String("id", entry.ID.Hex()), zap.Error(err))
		return nil
	}
	if snap.Periodo.UltimoConcurso == nil ||
		len(snap.DezenasMaisSorteadas) == 0 ||
		len(snap.DezenasMenosSorteadas) == 0 {
		return nil
	}
	return &snap
}

func (s *statisticsService) persistSnapshot(ctx context.Context, snap *models.StatisticsSnapshot, last, window int) {
	if s.results == nil {
		return
	}

	_, err := s.results.Save(ctx, StatisticsNamespace, snap, models.Metadata{
		"fonte":             models.SourceInternalAnalysis,
		"ultimos_concursos": window,
		"ultimo_concurso":   last,
		"data_analise":      time.Now().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("failed to store statistics snapshot",
			zap.Int("ultimo_concurso", last), zap.Int("janela", window), zap.Error(err))
	}
}
