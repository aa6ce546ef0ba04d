package repositories

import (
	"context"

	"github.com/lotodata/megasena-backend/internal/models"
)

// ResultRepository is the cache store for fetched and scraped payloads. Find
// methods return mongo.ErrNoDocuments-compatible errors on a miss; callers
// treat a miss as "fetch upstream", never as a failure.
type ResultRepository interface {
	// Save writes a new entry (content plus metadata under a url namespace)
	// and returns the store-assigned id. Entries are never updated in place.
	Save(ctx context.Context, url string, content interface{}, metadata models.Metadata) (string, error)

	// FindByDrawNumber looks an entry up by conteudo.concurso, falling back
	// to metadados.concurso for entries written by older passes.
	FindByDrawNumber(ctx context.Context, drawNumber int) (*models.CacheEntry, error)

	// FindLatestDraw returns the single most recent draw entry ordered by
	// conteudo.data_sorteio descending.
	FindLatestDraw(ctx context.Context) (*models.CacheEntry, error)

	// FindHistory returns up to limit draw entries, most recent first.
	FindHistory(ctx context.Context, limit int) ([]*models.CacheEntry, error)

	// FindStatistics looks up a statistics snapshot by its exact cache key:
	// the url namespace, the latest draw number and the window size.
	FindStatistics(ctx context.Context, url string, lastDraw, window int) (*models.CacheEntry, error)

	// DrawExists reports whether any entry carries metadados.concurso == n.
	// This is the sole idempotence key for import deduplication.
	DrawExists(ctx context.Context, drawNumber int) (bool, error)
}

// StatusRepository records operation status transitions in the status log.
type StatusRepository interface {
	Append(ctx context.Context, status string, metadata models.Metadata) (string, error)
}
