package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type keywords struct {
		Keywords []string `json:"keywords"`
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "valid json object",
			input: `{"keywords":["graph","vector"]}`,
			want:  []string{"graph", "vector"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{keywords: ['graph']}`,
			want:  []string{"graph"},
		},
		{
			name:  "trailing comma",
			input: `{"keywords":["graph",]}`,
			want:  []string{"graph"},
		},
		{
			name:  "missing endbracket",
			input: `{"keywords":["graph"`,
			want:  []string{"graph"},
		},
		{
			name:  "stringified json object",
			input: `"{\"keywords\":[\"graph\"]}"`,
			want:  []string{"graph"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"keywords\": [\"graph\"]\n}\n",
			want:  []string{"graph"},
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"keywords\":[\"graph\"]}\n```",
			want:  []string{"graph"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got keywords
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if len(got.Keywords) != len(tc.want) {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got.Keywords, tc.want)
			}
			for i := range tc.want {
				if got.Keywords[i] != tc.want[i] {
					t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got.Keywords, tc.want)
				}
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	type point struct {
		Content string `json:"content"`
	}

	input := `[{content:'A'},{content:'B',}]`
	var got []point
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[0].Content != "A" || got[1].Content != "B" {
		t.Fatalf("UnmarshalFlexible() got = %+v, want two points A,B", got)
	}
}

func TestUnmarshalFlexible_Garbage(t *testing.T) {
	var got map[string]any
	if err := UnmarshalFlexible("certainly! here you go", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for non-json input")
	}
}

func TestGenerateSchema(t *testing.T) {
	type response struct {
		Keywords []string `json:"keywords"`
	}

	schema := GenerateSchema(&response{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}
}
