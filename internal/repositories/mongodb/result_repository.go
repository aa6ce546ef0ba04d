package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepository implements repositories.ResultRepository over the
// scraping_results collection.
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a ResultRepository.
func NewResultRepository(db *mongo.Database) repositories.ResultRepository {
	return &ResultRepository{
		collection: db.Collection("scraping_results"),
	}
}

// Save inserts a new entry. Content and metadata are sanitized first: keys
// lose characters that break dotted-path queries and timestamps become ISO
// strings. The write is always an insert; draw records are immutable so a
// concurrent duplicate is harmless.
func (r *ResultRepository) Save(ctx context.Context, url string, content interface{}, metadata models.Metadata) (string, error) {
	conteudo, err := toDocument(content)
	if err != nil {
		return "", fmt.Errorf("failed to encode content: %w", err)
	}

	meta := bson.M{}
	for k, v := range metadata {
		meta[k] = v
	}
	meta["timestamp"] = time.Now().Format(time.RFC3339)

	doc := bson.M{
		"url":       url,
		"conteudo":  sanitizeValue(conteudo),
		"metadados": sanitizeValue(meta),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// FindByDrawNumber prefers the filter on the content object and falls back to
// the metadata object; entries written by different passes indexed the draw
// number in different places.
func (r *ResultRepository) FindByDrawNumber(ctx context.Context, drawNumber int) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	err := r.collection.FindOne(ctx, bson.M{"conteudo.concurso": drawNumber}).Decode(&entry)
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	err = r.collection.FindOne(ctx, bson.M{"metadados.concurso": drawNumber}).Decode(&entry)
	if err != nil {
		return nil, err // mongo.ErrNoDocuments on a miss
	}
	return &entry, nil
}

// FindLatestDraw returns the most recent draw entry.
func (r *ResultRepository) FindLatestDraw(ctx context.Context) (*models.CacheEntry, error) {
	filter := bson.M{"conteudo.concurso": bson.M{"$gt": 0}}
	opts := options.FindOne().SetSort(bson.M{"conteudo.data_sorteio": -1})

	var entry models.CacheEntry
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindHistory returns up to limit draw entries ordered by draw date
// descending, falling back to a provenance filter when no entry carries a
// draw number in its content.
func (r *ResultRepository) FindHistory(ctx context.Context, limit int) ([]*models.CacheEntry, error) {
	filter := bson.M{"conteudo.concurso": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.M{"conteudo.data_sorteio": -1}).
		SetLimit(int64(limit))

	entries, err := r.findAll(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	fallback := bson.M{"metadados.fonte": models.SourceOfficialAPI}
	return r.findAll(ctx, fallback, options.Find().SetLimit(int64(limit)))
}

// FindStatistics looks up a snapshot by its exact (namespace, latest draw,
// window) key.
func (r *ResultRepository) FindStatistics(ctx context.Context, url string, lastDraw, window int) (*models.CacheEntry, error) {
	filter := bson.M{
		"url":                         url,
		"metadados.ultimo_concurso":   lastDraw,
		"metadados.ultimos_concursos": window,
	}

	var entry models.CacheEntry
	if err := r.collection.FindOne(ctx, filter).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DrawExists checks the dedup key. No transactional guard backs the
// check-then-write sequence; a duplicate entry is the accepted worst case.
func (r *ResultRepository) DrawExists(ctx context.Context, drawNumber int) (bool, error) {
	opts := options.Count().SetLimit(1)
	n, err := r.collection.CountDocuments(ctx, bson.M{"metadados.concurso": drawNumber}, opts)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ResultRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.CacheEntry, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find query: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.CacheEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	if entries == nil {
		entries = []*models.CacheEntry{}
	}
	return entries, nil
}

// toDocument renders any content value as a bson.M so it can be sanitized
// uniformly before the insert.
func toDocument(content interface{}) (bson.M, error) {
	if m, ok := content.(bson.M); ok {
		return m, nil
	}
	raw, err := bson.Marshal(content)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
