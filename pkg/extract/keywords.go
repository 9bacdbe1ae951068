package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/privatetune/backend/pkg/ai"
	"github.com/privatetune/backend/pkg/logger"
)

const keywordPrompt = `
# Task Context
You are tasked with extracting the most important **keywords** from the provided text chunk. Keywords are the terms a reader would use to find or relate this chunk to others: named entities, technical terms, and central concepts.

# Detailed Task Description & Rules
- Extract at most %d keywords, ordered from most to least important.
- Keep each keyword short (one to three words), exactly as it appears in the text.
- Do not invent keywords that are not grounded in the text.
- Do not include generic filler words ("thing", "example", "text").
- Return an empty list if the chunk carries no meaningful content.

# Text
%s
`

type keywordResponse struct {
	Keywords []string `json:"keywords" jsonschema_description:"Keywords extracted from the text, most important first"`
}

// KeywordsAI extracts keywords from content using the AI client's structured
// output path. The result is trimmed, deduplicated and capped at max entries.
func KeywordsAI(ctx context.Context, client ai.Client, content string, max int) ([]string, error) {
	if max <= 0 {
		max = 5
	}
	if strings.TrimSpace(content) == "" {
		return []string{}, nil
	}

	prompt := fmt.Sprintf(keywordPrompt, max, content)

	var out keywordResponse
	err := client.GenerateCompletionWithFormat(
		ctx,
		"keywords",
		"Keywords extracted from a text chunk",
		prompt,
		&out,
	)
	if err != nil {
		return nil, err
	}

	return dedupeKeywords(out.Keywords, max), nil
}

// Keywords extracts keywords for a chunk, preferring the AI extractor and
// falling back to frequency-based extraction when the model call fails or no
// client is configured. It never returns an error; ingestion should not stall
// on a flaky model.
func Keywords(ctx context.Context, client ai.Client, content string, max int) []string {
	if client != nil {
		kws, err := KeywordsAI(ctx, client, content, max)
		if err == nil {
			return kws
		}
		logger.Warn("[Extract] ai keyword extraction failed, using frequency fallback", "err", err)
	}
	return TopKeywords(content, max)
}

// stopwords filtered out of frequency-based extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"have": true, "this": true, "that": true, "with": true, "from": true,
	"they": true, "will": true, "would": true, "there": true, "their": true,
	"what": true, "about": true, "which": true, "when": true, "your": true,
	"than": true, "then": true, "them": true, "these": true, "some": true,
	"were": true, "been": true, "more": true, "also": true, "into": true,
	"only": true, "other": true, "such": true, "over": true, "most": true,
}

// TopKeywords returns the max most frequent content words in text, ordered by
// descending frequency with first occurrence breaking ties. It is the offline
// fallback when no AI extractor is available.
func TopKeywords(text string, max int) []string {
	if max <= 0 {
		max = 5
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if len([]rune(w)) < 3 || stopwords[w] {
			continue
		}
		if _, ok := firstSeen[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	keys := make([]string, 0, len(counts))
	for w := range counts {
		keys = append(keys, w)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return firstSeen[keys[i]] < firstSeen[keys[j]]
	})

	if len(keys) > max {
		keys = keys[:max]
	}
	if keys == nil {
		keys = []string{}
	}
	return keys
}

func dedupeKeywords(raw []string, max int) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool)
	for _, kw := range raw {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		out = append(out, kw)
		if len(out) == max {
			break
		}
	}
	return out
}
