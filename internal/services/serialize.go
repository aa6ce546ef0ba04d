package services

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// jsonSafeValue rewrites the store-native values the JSON encoder cannot
// represent: timestamps become ISO-8601 strings, object ids become hex and
// reference types become {id, path, type} stubs. Everything else passes
// through untouched.
func jsonSafeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := map[string]interface{}{}
		for k, item := range val {
			out[k] = jsonSafeValue(item)
		}
		return out
	case map[string]interface{}:
		out := map[string]interface{}{}
		for k, item := range val {
			out[k] = jsonSafeValue(item)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = jsonSafeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = jsonSafeValue(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DBPointer:
		return map[string]interface{}{
			"id":   val.Pointer.Hex(),
			"path": val.DB,
			"type": "DBPointer",
		}
	case primitive.Decimal128:
		return val.String()
	case primitive.Binary:
		return fmt.Sprintf("binary(%d bytes)", len(val.Data))
	default:
		return v
	}
}
