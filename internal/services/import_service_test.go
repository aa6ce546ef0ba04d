package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lotodata/megasena-backend/internal/apperrors"
	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/pkg/caixa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDelay = time.Millisecond

func importFixture(repo *fakeResultRepo, fetcher *fakeFetcher) ImportService {
	draws := NewDrawService(repo, fetcher, zap.NewNop())
	return NewImportService(draws, repo, zap.NewNop(), 100, testDelay)
}

func TestImportRangeRequiresStore(t *testing.T) {
	fetcher := &fakeFetcher{}
	draws := NewDrawService(nil, fetcher, zap.NewNop())
	svc := NewImportService(draws, nil, zap.NewNop(), 100, testDelay)

	_, err := svc.ImportRange(context.Background(), 1, intPtr(5))
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestImportRangeRejectsNonPositiveBounds(t *testing.T) {
	svc := importFixture(newFakeResultRepo(), &fakeFetcher{})

	_, err := svc.ImportRange(context.Background(), 0, intPtr(5))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ImportRange(context.Background(), 1, intPtr(-3))
	assert.True(t, apperrors.IsValidation(err))
}

func TestImportRangeEnforcesCeilingBeforeAnyFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := importFixture(newFakeResultRepo(), fetcher)

	_, err := svc.ImportRange(context.Background(), 1, intPtr(200))
	require.True(t, apperrors.IsValidation(err))
	assert.Zero(t, fetcher.calls)
}

func TestImportRangeSwapsInvertedBounds(t *testing.T) {
	repo := newFakeResultRepo()
	fetcher := &fakeFetcher{draws: map[int]*caixa.DrawResponse{
		10: rawDraw(10), 11: rawDraw(11), 12: rawDraw(12),
	}}
	svc := importFixture(repo, fetcher)

	res, err := svc.ImportRange(context.Background(), 12, intPtr(10))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Importados)
	assert.Zero(t, res.JaExistem)
	assert.Zero(t, res.ComErro)
}

func TestImportRangeSkipsExistingDraws(t *testing.T) {
	repo := newFakeResultRepo()
	repo.existing[11] = true
	fetcher := &fakeFetcher{draws: map[int]*caixa.DrawResponse{
		10: rawDraw(10), 12: rawDraw(12),
	}}
	svc := importFixture(repo, fetcher)

	res, err := svc.ImportRange(context.Background(), 10, intPtr(12))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Importados)
	assert.Equal(t, 1, res.JaExistem)

	var statuses []string
	for _, item := range res.Concursos {
		statuses = append(statuses, item.Status)
	}
	assert.Equal(t, []string{
		models.ImportStatusImported,
		models.ImportStatusExists,
		models.ImportStatusImported,
	}, statuses)
}

func TestImportRangeContinuesPastItemFailures(t *testing.T) {
	repo := newFakeResultRepo()
	fetcher := &fakeFetcher{
		draws:  map[int]*caixa.DrawResponse{10: rawDraw(10), 12: rawDraw(12)},
		errFor: map[int]error{11: errors.New("boom")},
	}
	svc := importFixture(repo, fetcher)

	res, err := svc.ImportRange(context.Background(), 10, intPtr(12))
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, 2, res.Importados)
	assert.Equal(t, 1, res.ComErro)
	require.Len(t, res.Erros, 1)
	assert.Equal(t, 11, res.Erros[0].Concurso)
	assert.Contains(t, res.Erros[0].Erro, "boom")
}

func TestImportRangeNilEndResolvesToLatest(t *testing.T) {
	repo := newFakeResultRepo()
	fetcher := &fakeFetcher{
		latest: rawDraw(12),
		draws:  map[int]*caixa.DrawResponse{10: rawDraw(10), 11: rawDraw(11), 12: rawDraw(12)},
	}
	svc := importFixture(repo, fetcher)

	res, err := svc.ImportRange(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Importados)
}

func TestImportRangeToleratesExistenceCheckFailure(t *testing.T) {
	repo := newFakeResultRepo()
	repo.existsErr = errors.New("store flaked")
	fetcher := &fakeFetcher{draws: map[int]*caixa.DrawResponse{10: rawDraw(10)}}
	svc := importFixture(repo, fetcher)

	res, err := svc.ImportRange(context.Background(), 10, intPtr(10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Importados)
}
