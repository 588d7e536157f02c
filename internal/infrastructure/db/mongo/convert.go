package mongo

import (
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luma/gallery/internal/core/domain"
)

// Internal fields kept next to each record and hidden from callers.
const (
	fieldObjectID = "_id"
	fieldSeq      = "_seq"
)

// toBSON converts a decoded JSON document into values the driver can encode:
// json.Number becomes int64 or float64, nested objects and arrays recurse.
func toBSON(doc domain.Document) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == fieldObjectID || k == fieldSeq {
			continue
		}
		out[k] = toBSONValue(v)
	}
	return out
}

func toBSONValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case map[string]any:
		return toBSON(t)
	case domain.Document:
		return toBSON(t)
	case []any:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = toBSONValue(e)
		}
		return out
	}
	return v
}

// fromBSON converts a stored record back into a document, dropping the
// internal fields. Numbers come back as json.Number so both backends return
// the same shapes.
func fromBSON(m bson.M) domain.Document {
	out := make(domain.Document, len(m))
	for k, v := range m {
		if k == fieldObjectID || k == fieldSeq {
			continue
		}
		out[k] = fromBSONValue(v)
	}
	return out
}

func fromBSONValue(v any) any {
	switch t := v.(type) {
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case bson.M:
		return map[string]any(fromBSON(t))
	case bson.D:
		return map[string]any(fromBSON(t.Map()))
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromBSONValue(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	}
	return v
}
