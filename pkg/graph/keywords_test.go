package graph

import (
	"reflect"
	"testing"
)

func TestNormalizeKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
		{
			name: "string slice",
			in:   []string{"alpha", "beta"},
			want: []string{"alpha", "beta"},
		},
		{
			name: "trims and drops empties",
			in:   []string{"  alpha ", "", "   ", "beta"},
			want: []string{"alpha", "beta"},
		},
		{
			name: "deduplicates",
			in:   []string{"alpha", "alpha ", "beta", "alpha"},
			want: []string{"alpha", "beta"},
		},
		{
			name: "json encoded array",
			in:   `["a","b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "json encoded with whitespace entries",
			in:   `[" a ", "", "b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "unparseable string",
			in:   "not json",
			want: []string{},
		},
		{
			name: "json encoded non-array",
			in:   `{"keyword":"a"}`,
			want: []string{},
		},
		{
			name: "objects with keyword field",
			in:   []any{map[string]any{"keyword": "cache"}, map[string]any{"text": "index"}},
			want: []string{"cache", "index"},
		},
		{
			name: "mixed strings and objects",
			in:   []any{"plain", map[string]any{"keyword": " tagged "}, 42},
			want: []string{"plain", "tagged", "42"},
		},
		{
			name: "nested json array of objects",
			in:   `[{"keyword":"a"},{"text":"b"},"c"]`,
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeKeywords(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeKeywords(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeywordsIdempotent(t *testing.T) {
	in := []string{"alpha", "beta", "gamma"}
	once := NormalizeKeywords(in)
	twice := NormalizeKeywords(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalizing twice changed the result: %#v vs %#v", once, twice)
	}
	if !reflect.DeepEqual(once, in) {
		t.Errorf("normalizing an already-normalized list changed it: %#v", once)
	}
}
