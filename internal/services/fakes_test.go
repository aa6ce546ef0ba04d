package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeFetcher serves canned upstream responses and counts calls.
type fakeFetcher struct {
	latest *caixa.DrawResponse
	draws  map[int]*caixa.DrawResponse
	errFor map[int]error
	err    error
	calls  int
}

func (f *fakeFetcher) FetchDraw(_ context.Context, drawNumber *int) (*caixa.DrawResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if drawNumber == nil {
		if f.latest == nil {
			return nil, fmt.Errorf("no latest draw configured")
		}
		return f.latest, nil
	}
	if err, ok := f.errFor[*drawNumber]; ok {
		return nil, err
	}
	if resp, ok := f.draws[*drawNumber]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("no draw %d configured", *drawNumber)
}

type savedEntry struct {
	url      string
	content  interface{}
	metadata models.Metadata
}

// fakeResultRepo is an in-memory stand-in for the Mongo repository. Misses
// surface as mongo.ErrNoDocuments, matching the real implementation.
type fakeResultRepo struct {
	byNumber map[int]*models.CacheEntry
	latest   *models.CacheEntry
	history  []*models.CacheEntry
	stats    map[string]*models.CacheEntry
	existing map[int]bool
	saved    []savedEntry

	findErr   error
	existsErr error
	saveErr   error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{
		byNumber: map[int]*models.CacheEntry{},
		stats:    map[string]*models.CacheEntry{},
		existing: map[int]bool{},
	}
}

func statsKey(url string, lastDraw, window int) string {
	return fmt.Sprintf("%s|%d|%d", url, lastDraw, window)
}

func (r *fakeResultRepo) Save(_ context.Context, url string, content interface{}, metadata models.Metadata) (string, error) {
	if r.saveErr != nil {
		return "", r.saveErr
	}
	r.saved = append(r.saved, savedEntry{url: url, content: content, metadata: metadata})
	return fmt.Sprintf("id-%d", len(r.saved)), nil
}

func (r *fakeResultRepo) FindByDrawNumber(_ context.Context, drawNumber int) (*models.CacheEntry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	entry, ok := r.byNumber[drawNumber]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return entry, nil
}

func (r *fakeResultRepo) FindLatestDraw(_ context.Context) (*models.CacheEntry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.latest, nil
}

func (r *fakeResultRepo) FindHistory(_ context.Context, limit int) ([]*models.CacheEntry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if limit > 0 && len(r.history) > limit {
		return r.history[:limit], nil
	}
	return r.history, nil
}

func (r *fakeResultRepo) FindStatistics(_ context.Context, url string, lastDraw, window int) (*models.CacheEntry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	entry, ok := r.stats[statsKey(url, lastDraw, window)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return entry, nil
}

func (r *fakeResultRepo) DrawExists(_ context.Context, drawNumber int) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.existing[drawNumber], nil
}

// fakeStatusRepo records status-log appends.
type fakeStatusRepo struct {
	appended []string
	err      error
}

func (r *fakeStatusRepo) Append(_ context.Context, status string, _ models.Metadata) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.appended = append(r.appended, status)
	return fmt.Sprintf("status-%d", len(r.appended)), nil
}

// entryWith wraps any value as a stored cache entry, round-tripping through
// BSON the way the real repository decodes documents.
func entryWith(t *testing.T, content interface{}, metadata models.Metadata) *models.CacheEntry {
	t.Helper()
	raw, err := bson.Marshal(content)
	require.NoError(t, err)
	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return &models.CacheEntry{Conteudo: doc, Metadados: metadata}
}

// rawDraw builds an upstream payload for draw n with fixed dezenas.
func rawDraw(n int, dezenas ...string) *caixa.DrawResponse {
	if len(dezenas) == 0 {
		dezenas = []string{"04", "12", "23", "34", "45", "56"}
	}
	return &caixa.DrawResponse{
		Numero:       n,
		DataApuracao: "05/03/2024",
		ListaDezenas: dezenas,
		ListaRateioPremio: []caixa.PrizeBand{
			{DescricaoFaixa: models.TierSena, NumeroDeGanhadores: 0, ValorPremio: 0},
			{DescricaoFaixa: models.TierQuina, NumeroDeGanhadores: 42, ValorPremio: 50000.10},
			{DescricaoFaixa: models.TierQuadra, NumeroDeGanhadores: 3500, ValorPremio: 1000.25},
		},
		Acumulado: true,
	}
}
