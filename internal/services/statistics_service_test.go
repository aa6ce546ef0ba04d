package services

import (
	"context"
	"testing"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func statsFetcher(last, count int) *fakeFetcher {
	draws := map[int]*caixa.DrawResponse{}
	for n := last - count + 1; n <= last; n++ {
		draws[n] = rawDraw(n)
	}
	return &fakeFetcher{latest: rawDraw(last), draws: draws}
}

func TestGetStatisticsFrequencySums(t *testing.T) {
	fetcher := statsFetcher(2700, 5)
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, nil, zap.NewNop(), 10)

	snap, err := svc.GetStatistics(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, snap.ConcursosAnalisados)
	require.NotNil(t, snap.Periodo.PrimeiroConcurso)
	require.NotNil(t, snap.Periodo.UltimoConcurso)
	assert.Equal(t, 2696, *snap.Periodo.PrimeiroConcurso)
	assert.Equal(t, 2700, *snap.Periodo.UltimoConcurso)

	// Every analyzed draw contributes exactly six numbers.
	total := 0
	seen := map[string]bool{}
	for _, f := range append(append([]models.NumberFrequency{}, snap.DezenasMaisSorteadas...), snap.DezenasMenosSorteadas...) {
		if !seen[f.Dezena] {
			seen[f.Dezena] = true
			total += f.Frequencia
		}
	}
	// Top 10 holds all six drawn numbers (freq 5) plus four zeros; the
	// bottom 10 holds only zeros.
	assert.Equal(t, 5*models.DezenasPerDraw, total)

	assert.Len(t, snap.DezenasMaisSorteadas, 10)
	assert.Len(t, snap.DezenasMenosSorteadas, 10)
	for i := 1; i < len(snap.DezenasMaisSorteadas); i++ {
		assert.GreaterOrEqual(t,
			snap.DezenasMaisSorteadas[i-1].Frequencia,
			snap.DezenasMaisSorteadas[i].Frequencia)
	}

	assert.Equal(t, 5*42, snap.TotalGanhadores[models.TierQuina])
	assert.Equal(t, 5*3500, snap.TotalGanhadores[models.TierQuadra])
	assert.Equal(t, 0, snap.TotalGanhadores[models.TierSena])
}

func TestGetStatisticsTiesKeepAscendingOrder(t *testing.T) {
	fetcher := statsFetcher(2700, 1)
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, nil, zap.NewNop(), 10)

	snap, err := svc.GetStatistics(context.Background(), 1)
	require.NoError(t, err)

	// With one draw, the six drawn numbers lead and stay in ascending
	// numeric order among themselves, as do the zero-frequency tail.
	drawn := []string{"04", "12", "23", "34", "45", "56"}
	for i, dezena := range drawn {
		assert.Equal(t, dezena, snap.DezenasMaisSorteadas[i].Dezena)
		assert.Equal(t, 1, snap.DezenasMaisSorteadas[i].Frequencia)
	}
	// Bottom of the list: highest undrawn numbers, still ascending.
	bottom := snap.DezenasMenosSorteadas
	assert.Equal(t, "50", bottom[0].Dezena)
	assert.Equal(t, "60", bottom[len(bottom)-1].Dezena)
	for _, f := range bottom {
		assert.Zero(t, f.Frequencia)
	}
}

func TestGetStatisticsClampsWindowToDefault(t *testing.T) {
	fetcher := statsFetcher(2700, 10)
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, nil, zap.NewNop(), 10)

	for _, window := range []int{0, -5} {
		snap, err := svc.GetStatistics(context.Background(), window)
		require.NoError(t, err)
		assert.Equal(t, 10, snap.ConcursosAnalisados)
	}
}

func TestGetStatisticsSkipsFailedDraws(t *testing.T) {
	fetcher := statsFetcher(2700, 5)
	fetcher.errFor = map[int]error{2698: assert.AnError}
	delete(fetcher.draws, 2698)
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, nil, zap.NewNop(), 10)

	snap, err := svc.GetStatistics(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.ConcursosAnalisados)
}

func TestGetStatisticsServesCachedSnapshot(t *testing.T) {
	repo := newFakeResultRepo()
	last := 2700
	cached := &models.StatisticsSnapshot{
		ConcursosAnalisados: 5,
		Periodo:             models.StatisticsPeriod{PrimeiroConcurso: intPtr(2696), UltimoConcurso: intPtr(last)},
		DezenasMaisSorteadas: []models.NumberFrequency{
			{Dezena: "04", Frequencia: 5},
		},
		DezenasMenosSorteadas: []models.NumberFrequency{
			{Dezena: "60", Frequencia: 0},
		},
		TotalGanhadores: map[string]int{models.TierSena: 1},
	}
	repo.stats[statsKey(StatisticsNamespace, last, 5)] = entryWith(t, cached, models.Metadata{
		"fonte": models.SourceInternalAnalysis,
	})
	repo.latest = entryWith(t, rawDraw(last).Normalize(), models.Metadata{"concurso": last})

	fetcher := &fakeFetcher{}
	draws := NewDrawService(repo, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, repo, zap.NewNop(), 10)

	snap, err := svc.GetStatistics(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.ConcursosAnalisados)
	assert.Equal(t, 1, snap.TotalGanhadores[models.TierSena])
	assert.Zero(t, fetcher.calls, "a valid snapshot must short-circuit recomputation")
	assert.Empty(t, repo.saved, "a cache hit must not persist a new snapshot")
}

func TestGetStatisticsRecomputesOnMalformedSnapshot(t *testing.T) {
	repo := newFakeResultRepo()
	last := 2700
	// Snapshot missing the period and lists fails the shape check.
	repo.stats[statsKey(StatisticsNamespace, last, 3)] = entryWith(t,
		map[string]interface{}{"total_concursos": 3}, models.Metadata{})
	repo.latest = entryWith(t, rawDraw(last).Normalize(), models.Metadata{"concurso": last})

	fetcher := statsFetcher(last, 3)
	draws := NewDrawService(repo, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, repo, zap.NewNop(), 10)

	snap, err := svc.GetStatistics(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.ConcursosAnalisados)
	assert.NotZero(t, fetcher.calls)

	require.NotEmpty(t, repo.saved)
	stored := repo.saved[len(repo.saved)-1]
	assert.Equal(t, StatisticsNamespace, stored.url)
	assert.Equal(t, models.SourceInternalAnalysis, stored.metadata["fonte"])
	assert.Equal(t, 3, stored.metadata["ultimos_concursos"])
	assert.Equal(t, last, stored.metadata["ultimo_concurso"])
}

func TestGetStatisticsPropagatesLatestFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: assert.AnError}
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewStatisticsService(draws, nil, zap.NewNop(), 10)

	_, err := svc.GetStatistics(context.Background(), 5)
	assert.Error(t, err)
}
