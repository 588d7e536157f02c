package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{name: "object", body: `{"title":"x","price":10}`, wantLen: 2},
		{name: "empty body", body: "", wantLen: 0},
		{name: "whitespace body", body: "  \n", wantLen: 0},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "string", body: `"hi"`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "trailing garbage", body: `{"a":1} x`, wantErr: true},
		{name: "malformed", body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(doc) != tt.wantLen {
				t.Fatalf("expected %d keys, got %d", tt.wantLen, len(doc))
			}
		})
	}
}

func TestDecodeDocument_KeepsNumbersExact(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"id":1760000000123,"price":19.99}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["price"] != json.Number("19.99") {
		t.Fatalf("price = %#v, want json.Number(19.99)", doc["price"])
	}
	id, ok := doc.ID()
	if !ok || id != 1760000000123 {
		t.Fatalf("ID() = %d, %v", id, ok)
	}
}

func TestDocument_ID(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want int64
		ok   bool
	}{
		{name: "json number", doc: Document{"id": json.Number("42")}, want: 42, ok: true},
		{name: "integral float number", doc: Document{"id": json.Number("42.0")}, want: 42, ok: true},
		{name: "fractional", doc: Document{"id": json.Number("4.2")}, ok: false},
		{name: "float64", doc: Document{"id": float64(7)}, want: 7, ok: true},
		{name: "int64", doc: Document{"id": int64(9)}, want: 9, ok: true},
		{name: "int32", doc: Document{"id": int32(3)}, want: 3, ok: true},
		{name: "string", doc: Document{"id": "42"}, ok: false},
		{name: "missing", doc: Document{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.doc.ID()
			if ok != tt.ok || (ok && got != tt.want) {
				t.Fatalf("ID() = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDocument_MergeOverwritesSuppliedKeysOnly(t *testing.T) {
	base := Document{"id": json.Number("1"), "name": "Ann", "phone": "555"}
	merged := base.Merge(Document{"name": "Anne", "bio": "hi"})

	if merged["name"] != "Anne" || merged["phone"] != "555" || merged["bio"] != "hi" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if base["name"] != "Ann" {
		t.Fatal("merge must not modify the receiver")
	}
}

func TestDocument_MergeCanReplaceID(t *testing.T) {
	base := Document{"id": json.Number("1")}
	merged := base.Merge(Document{"id": json.Number("2")})

	if id, _ := merged.ID(); id != 2 {
		t.Fatalf("expected body id to be merged, got %d", id)
	}
}

func TestDocument_WithID(t *testing.T) {
	doc := Document{"id": json.Number("5"), "title": "x"}
	out := doc.WithID(99)

	if id, _ := out.ID(); id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
	if id, _ := doc.ID(); id != 5 {
		t.Fatal("WithID must not modify the receiver")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{in: "42", want: 42, ok: true},
		{in: "  42", want: 42, ok: true},
		{in: "42abc", want: 42, ok: true},
		{in: "-7", want: -7, ok: true},
		{in: "+7", want: 7, ok: true},
		{in: "0x1A", want: 26, ok: true},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "-", ok: false},
		{in: "99999999999999999999999", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseID(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
