package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"math"
	"strconv"
	"strings"
)

// FieldID is the key every stored record is identified by.
const FieldID = "id"

var ErrInvalidPayload = errors.New("invalid payload")

// Document is a schemaless stored record. Numbers decoded from JSON are kept as
// json.Number so ids and prices are written back exactly as they were read.
type Document map[string]any

// DecodeDocument parses a JSON object. An empty body decodes to an empty
// document; anything other than an object is ErrInvalidPayload.
func DecodeDocument(body []byte) (Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrInvalidPayload
	}
	if doc == nil {
		// literal null
		return nil, ErrInvalidPayload
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidPayload
	}
	return doc, nil
}

// DecodeDocuments parses a JSON array of objects, as written by the file store.
func DecodeDocuments(data []byte) ([]Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var docs []Document
	if err := dec.Decode(&docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ID returns the record's numeric id. Records whose id is missing, non-numeric
// or fractional have no id and never match a lookup.
func (d Document) ID() (int64, bool) {
	switch v := d[FieldID].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(v)
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	}
	return 0, false
}

// WithID returns a shallow copy of d carrying the given id.
func (d Document) WithID(id int64) Document {
	out := d.Clone()
	out[FieldID] = json.Number(strconv.FormatInt(id, 10))
	return out
}

// Clone returns a shallow copy. Nested values are shared, which is safe
// because merges only ever replace top-level keys.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	return maps.Clone(d)
}

// Merge returns a new document with patch's keys written over d's. Every key
// is merged, id included.
func (d Document) Merge(patch Document) Document {
	out := d.Clone()
	maps.Copy(out, patch)
	return out
}

// ParseID reads a path parameter the way JavaScript's parseInt does: leading
// whitespace, an optional sign, then decimal digits (or hex after 0x); the
// rest is ignored. ok is false when no digits were found.
func ParseID(s string) (id int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
