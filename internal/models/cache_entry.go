package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provenance values recorded in metadados.fonte. The wire values are kept
// compatible with the data already present in production collections.
const (
	SourceOfficialAPI      = "api_caixa"
	SourceScrapeEndpoint   = "api_endpoint"
	SourceInternalAnalysis = "analise_interna"
)

// Metadata is the free-form metadados object stored next to each payload.
type Metadata map[string]interface{}

// Int reads an integer metadata field, tolerating the numeric types the BSON
// decoder may produce for it.
func (m Metadata) Int(key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// String reads a string metadata field.
func (m Metadata) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// CacheEntry wraps a payload stored in the scraping_results collection. The
// url field is a logical namespace, not necessarily a network address.
type CacheEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	URL       string             `bson:"url" json:"url"`
	Conteudo  bson.M             `bson:"conteudo" json:"conteudo"`
	Metadados Metadata           `bson:"metadados" json:"metadados"`
}

// DecodeConteudo decodes the nested content object into a typed value.
func (e *CacheEntry) DecodeConteudo(out interface{}) error {
	raw, err := bson.Marshal(e.Conteudo)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// StatusEntry is one row of the scraping_status operation log.
type StatusEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Metadados Metadata           `bson:"metadados" json:"metadados"`
}
