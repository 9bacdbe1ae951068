package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string(nil),
		},
		{
			name: "single sentence",
			text: "Hello world.",
			want: []string{"Hello world."},
		},
		{
			name: "multiple sentences",
			text: "Hello world. This is a test! How are you?",
			want: []string{
				"Hello world.",
				"This is a test!",
				"How are you?",
			},
		},
		{
			name: "sentences with empty lines",
			text: "First sentence.\n\nSecond sentence.\n\nThird sentence.",
			want: []string{
				"First sentence.",
				"Second sentence.",
				"Third sentence.",
			},
		},
		{
			name: "multi-line sentence",
			text: "This is a long\nsentence that spans\nmultiple lines.",
			want: []string{"This is a long sentence that spans multiple lines."},
		},
		{
			name: "cjk terminators",
			text: "知识点很重要。这是第二句！这是第三句？",
			want: []string{
				"知识点很重要。",
				"这是第二句！",
				"这是第三句？",
			},
		},
		{
			name: "numeric listing kept together",
			text: "Steps: 1. chunk 2. extract 3. done.",
			want: []string{"Steps: 1. chunk 2. extract 3. done."},
		},
		{
			name: "terminator inside closing quote",
			text: `He said "Stop." Then he left.`,
			want: []string{
				`He said "Stop."`,
				"Then he left.",
			},
		},
		{
			name: "markdown table as single sentence",
			text: "Header1 | Header2\n------- | -------\nValue1  | Value2\nValue3  | Value4",
			want: []string{
				"Header1 | Header2\n------- | -------\nValue1  | Value2\nValue3  | Value4",
			},
		},
		{
			name: "text around table",
			text: "Intro text.\nHeader1 | Header2\n------- | -------\nValue1  | Value2\n\nConclusion text.",
			want: []string{
				"Intro text.",
				"Header1 | Header2\n------- | -------\nValue1  | Value2",
				"Conclusion text.",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitSentences() got = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestChunkTextSingleChunk(t *testing.T) {
	chunks, err := ChunkText("Hello world. This is a test.", "o200k_base", 1000)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("ChunkText() got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Index != 0 {
		t.Fatalf("ChunkText() index = %d, want 0", chunks[0].Index)
	}
	if chunks[0].Text != "Hello world. This is a test." {
		t.Fatalf("ChunkText() text = %q", chunks[0].Text)
	}
	if chunks[0].Tokens <= 0 {
		t.Fatalf("ChunkText() tokens = %d, want > 0", chunks[0].Tokens)
	}
}

func TestChunkTextSplitsOnBudget(t *testing.T) {
	text := "The first sentence talks about knowledge graphs in detail. " +
		"The second sentence covers vector embeddings and search. " +
		"The third sentence is about fine-tuning language models."

	chunks, err := ChunkText(text, "o200k_base", 12)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("ChunkText() got %d chunks, want at least 2", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has index %d", i, c.Index)
		}
		if strings.TrimSpace(c.Text) == "" {
			t.Fatalf("chunk %d is empty", i)
		}
	}

	joined := strings.Join([]string{chunks[0].Text, chunks[1].Text}, " ")
	if !strings.Contains(joined, "first sentence") || !strings.Contains(joined, "second sentence") {
		t.Fatalf("chunks lost content: %q", joined)
	}
}

func TestChunkTextEmpty(t *testing.T) {
	chunks, err := ChunkText("   \n\n  ", "o200k_base", 100)
	if err != nil {
		t.Fatalf("ChunkText() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("ChunkText() got %d chunks, want 0", len(chunks))
	}
}

func TestChunkTextBadEncoder(t *testing.T) {
	if _, err := ChunkText("Hello.", "no-such-encoding", 100); err == nil {
		t.Fatal("ChunkText() expected error for unknown encoding")
	}
}
