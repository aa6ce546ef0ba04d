package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultLastN = 10

type drawService struct {
	results repositories.ResultRepository // nil when the store is unavailable
	fetcher DrawFetcher
	logger  *zap.Logger
}

// NewDrawService creates the draw retrieval core. A nil results repository
// degrades the service to upstream-only operation.
func NewDrawService(results repositories.ResultRepository, fetcher DrawFetcher, logger *zap.Logger) DrawService {
	return &drawService{
		results: results,
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetDraw serves from the cache when it can and otherwise fetches upstream,
// writing the normalized result back best-effort. Upstream failures propagate
// unchanged; cache failures only ever cause a refetch.
func (s *drawService) GetDraw(ctx context.Context, drawNumber *int) (*models.DrawRecord, error) {
	if rec := s.lookupCached(ctx, drawNumber); rec != nil {
		return rec, nil
	}

	raw, err := s.fetcher.FetchDraw(ctx, drawNumber)
	if err != nil {
		return nil, err
	}
	rec := raw.Normalize()
	s.writeThrough(ctx, drawNumber, rec)
	return rec, nil
}

func (s *drawService) lookupCached(ctx context.Context, drawNumber *int) *models.DrawRecord {
	if s.results == nil {
		return nil
	}

	var (
		entry *models.CacheEntry
		err   error
	)
	if drawNumber != nil {
		entry, err = s.results.FindByDrawNumber(ctx, *drawNumber)
	} else {
		entry, err = s.results.FindLatestDraw(ctx)
	}
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn("cache lookup failed", zap.Error(err))
		}
		return nil
	}

	rec, err := decodeDrawContent(entry)
	if err != nil {
		s.logger.Warn("cached entry has an unusable shape, refetching",
			zap.String("id", entry.ID.Hex()), zap.Error(err))
		return nil
	}
	s.logger.Debug("draw served from cache", zap.Int("concurso", rec.Concurso))
	return rec
}

// decodeDrawContent accepts both on-disk shapes. Entries written by older
// passes carry the raw upstream payload, detected by the listaDezenas marker
// field; those are normalized forward so callers only ever see the internal
// schema.
func decodeDrawContent(entry *models.CacheEntry) (*models.DrawRecord, error) {
	if _, isRaw := entry.Conteudo["listaDezenas"]; isRaw {
		var resp caixa.DrawResponse
		if err := entry.DecodeConteudo(&resp); err != nil {
			return nil, err
		}
		return resp.Normalize(), nil
	}

	var rec models.DrawRecord
	if err := entry.DecodeConteudo(&rec); err != nil {
		return nil, err
	}
	if rec.Concurso <= 0 {
		return nil, fmt.Errorf("entry carries no draw number")
	}
	return &rec, nil
}

// writeThrough persists a freshly fetched draw. Failures are logged and
// swallowed; fetch success must not depend on cache-write success.
func (s *drawService) writeThrough(ctx context.Context, drawNumber *int, rec *models.DrawRecord) {
	if s.results == nil {
		return
	}

	label := "ultimo"
	if drawNumber != nil {
		label = strconv.Itoa(*drawNumber)
	}
	id, err := s.results.Save(ctx, "megasena/concursos/"+label, rec, models.Metadata{
		"fonte":         models.SourceOfficialAPI,
		"concurso":      rec.Concurso,
		"data_obtencao": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("write-through to store failed",
			zap.Int("concurso", rec.Concurso), zap.Error(err))
		return
	}
	s.logger.Debug("draw stored", zap.String("id", id), zap.Int("concurso", rec.Concurso))
}

// GetLatestDraws collects the last N draws as summaries, most recent first.
// Per-draw failures shrink the list; fetched summaries are stored under the
// ultimos_sorteios namespace unless the draw is already present.
func (s *drawService) GetLatestDraws(ctx context.Context, lastN int) (*models.LatestDrawsResult, error) {
	if lastN <= 0 {
		lastN = defaultLastN
	}

	latest, err := s.GetDraw(ctx, nil)
	if err != nil {
		return nil, err
	}

	last := latest.Concurso
	first := last - lastN + 1
	if first < 1 {
		first = 1
	}

	existing := s.existingDraws(ctx, lastN)

	sorteios := []models.DrawSummary{}
	for n := first; n <= last; n++ {
		n := n
		rec, err := s.GetDraw(ctx, &n)
		if err != nil {
			s.logger.Warn("skipping draw in latest-draws listing",
				zap.Int("concurso", n), zap.Error(err))
			continue
		}

		summary := models.DrawSummary{
			Concurso:        rec.Concurso,
			DataSorteio:     rec.DataSorteio,
			Dezenas:         rec.Dezenas,
			PremioAcumulado: rec.ValorAcumuladoProximoConcurso,
		}
		sorteios = append(sorteios, summary)

		if s.results != nil && !existing[n] {
			_, err := s.results.Save(ctx, fmt.Sprintf("ultimos_sorteios/megasena/%d", n), summary, models.Metadata{
				"fonte":    models.SourceOfficialAPI,
				"endpoint": "/megasena/ultimos_sorteios",
				"concurso": n,
			})
			if err != nil {
				s.logger.Warn("failed to store draw summary",
					zap.Int("concurso", n), zap.Error(err))
			}
		}
	}

	sort.Slice(sorteios, func(i, j int) bool {
		return sorteios[i].Concurso > sorteios[j].Concurso
	})

	return &models.LatestDrawsResult{
		Status:   "success",
		Total:    len(sorteios),
		UltimosN: lastN,
		Sorteios: sorteios,
	}, nil
}

// existingDraws maps which draw numbers the store already holds, read from
// recent history metadata. Errors degrade to an empty map: re-storing an
// existing draw is harmless.
func (s *drawService) existingDraws(ctx context.Context, lastN int) map[int]bool {
	out := map[int]bool{}
	if s.results == nil {
		return out
	}

	entries, err := s.results.FindHistory(ctx, lastN*2)
	if err != nil {
		s.logger.Warn("failed to list existing draws", zap.Error(err))
		return out
	}
	for _, entry := range entries {
		if fonte, _ := entry.Metadados.String("fonte"); fonte != models.SourceOfficialAPI {
			continue
		}
		if n, ok := entry.Metadados.Int("concurso"); ok {
			out[n] = true
		}
	}
	return out
}
