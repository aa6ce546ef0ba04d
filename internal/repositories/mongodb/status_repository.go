package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/lotodata/megasena-backend/internal/models"
	"github.com/lotodata/megasena-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusRepository implements repositories.StatusRepository over the
// scraping_status collection.
type StatusRepository struct {
	collection *mongo.Collection
}

// NewStatusRepository creates a StatusRepository.
func NewStatusRepository(db *mongo.Database) repositories.StatusRepository {
	return &StatusRepository{
		collection: db.Collection("scraping_status"),
	}
}

// Append records one status transition.
func (r *StatusRepository) Append(ctx context.Context, status string, metadata models.Metadata) (string, error) {
	meta := bson.M{}
	for k, v := range metadata {
		meta[k] = v
	}
	meta["timestamp"] = time.Now().Format(time.RFC3339)

	doc := bson.M{
		"status":    status,
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
