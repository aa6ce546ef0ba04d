package mongodb

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Characters stripped from document keys. The set comes from the original
// store's restrictions; dots in particular still break Mongo dotted-path
// filters on nested fields.
var forbiddenKeyChars = []string{".", "/", "[", "]", "*", "`"}

func sanitizeKey(key string) string {
	for _, c := range forbiddenKeyChars {
		key = strings.ReplaceAll(key, c, "_")
	}
	return key
}

// sanitizeValue rewrites a value tree before it is persisted: map keys are
// cleaned and timestamps become ISO-8601 strings so every stored payload is
// JSON-representable on the way back out.
func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := bson.M{}
		for k, item := range val {
			out[sanitizeKey(k)] = sanitizeValue(item)
		}
		return out
	case map[string]interface{}:
		out := bson.M{}
		for k, item := range val {
			out[sanitizeKey(k)] = sanitizeValue(item)
		}
		return out
	case bson.A:
		out := make(bson.A, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	default:
		return v
	}
}
