package extract

import (
	"context"
	"reflect"
	"testing"
)

func TestTopKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "orders by frequency",
			text: "graph graph graph vector vector tuning",
			max:  5,
			want: []string{"graph", "vector", "tuning"},
		},
		{
			name: "filters stopwords and short words",
			text: "the and for it is graph",
			max:  5,
			want: []string{"graph"},
		},
		{
			name: "ties break by first occurrence",
			text: "alpha beta alpha beta gamma",
			max:  2,
			want: []string{"alpha", "beta"},
		},
		{
			name: "lowercases input",
			text: "Graph GRAPH graph",
			max:  5,
			want: []string{"graph"},
		},
		{
			name: "empty text",
			text: "",
			max:  5,
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TopKeywords(tc.text, tc.max)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("TopKeywords() got = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestDedupeKeywords(t *testing.T) {
	got := dedupeKeywords([]string{" Graph ", "graph", "", "Vector", "vector", "tuning"}, 2)
	want := []string{"Graph", "Vector"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("dedupeKeywords() got = %#v, want %#v", got, want)
	}
}

func TestKeywordsFallsBackWithoutClient(t *testing.T) {
	got := Keywords(context.Background(), nil, "graph graph vector", 5)
	want := []string{"graph", "vector"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keywords() got = %#v, want %#v", got, want)
	}
}
