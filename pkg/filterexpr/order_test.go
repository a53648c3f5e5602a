package filterexpr

import (
	"reflect"
	"testing"
)

func TestParseOrderBy(t *testing.T) {
	schema := OrderSchema{
		DefaultKey:  "position",
		FallbackKey: "id",
		MaxKeys:     3,
		Fields: map[string]OrderField{
			"position":    {},
			"id":          {},
			"word":        {},
			"next_review": {NullsFirst: true},
		},
	}

	tests := []struct {
		raw  string
		want []OrderKey
	}{
		{"", []OrderKey{{Field: "position"}, {Field: "id"}}},
		{"  ,  ", []OrderKey{{Field: "position"}, {Field: "id"}}},
		{"word desc", []OrderKey{{Field: "word", Desc: true}, {Field: "id"}}},
		{"next_review, word DESC", []OrderKey{{Field: "next_review", NullsFirst: true}, {Field: "word", Desc: true}, {Field: "id"}}},
		{"id desc", []OrderKey{{Field: "id", Desc: true}}},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseOrderBy(tc.raw, schema)
			if err != nil {
				t.Fatalf("ParseOrderBy(%q) returned error: %v", tc.raw, err)
			}
			if !reflect.DeepEqual(got.Keys, tc.want) {
				t.Fatalf("ParseOrderBy(%q) = %+v, want %+v", tc.raw, got.Keys, tc.want)
			}
		})
	}
}

func TestParseOrderBy_SchemaErrors(t *testing.T) {
	fields := map[string]OrderField{"position": {}, "id": {}}
	bad := []OrderSchema{
		{FallbackKey: "id", Fields: fields},
		{DefaultKey: "position", Fields: fields},
		{DefaultKey: "missing", FallbackKey: "id", Fields: fields},
		{DefaultKey: "position", FallbackKey: "missing", Fields: fields},
	}
	for i, schema := range bad {
		if _, err := ParseOrderBy("", schema); err == nil {
			t.Fatalf("schema %d: expected error", i)
		}
	}
}
