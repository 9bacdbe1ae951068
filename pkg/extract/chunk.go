package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

// Chunk is a contiguous span of sentences that fits the token budget.
// Index is the position of the chunk within the document, starting at 0.
type Chunk struct {
	Index  int
	Text   string
	Tokens int
}

// ChunkText splits a document into sentence-aligned chunks of at most
// maxTokens tokens each. Sentences are never split across chunks; a single
// sentence that exceeds the budget becomes a chunk of its own.
//
// The encoder parameter names a tiktoken encoding, e.g. "o200k_base".
func ChunkText(text string, encoder string, maxTokens int) ([]Chunk, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	chunkStart := -1
	chunkEnd := -1

	flushChunk := func() {
		if chunkStart < 0 || chunkEnd <= chunkStart {
			return
		}

		var chunkText strings.Builder
		for i := chunkStart; i < chunkEnd; i++ {
			if i > chunkStart {
				chunkText.WriteString(" ")
			}
			chunkText.WriteString(sentences[i])
		}

		body := strings.TrimSpace(chunkText.String())
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   body,
			Tokens: len(enc.Encode(body, nil, nil)),
		})
		chunkStart = -1
		chunkEnd = -1
	}

	for i := range sentences {
		if chunkStart < 0 {
			chunkStart = i
			chunkEnd = i + 1
			continue
		}

		var testText strings.Builder
		for j := chunkStart; j <= i; j++ {
			if j > chunkStart {
				testText.WriteString(" ")
			}
			testText.WriteString(sentences[j])
		}

		testTokens := len(enc.Encode(testText.String(), nil, nil))

		if testTokens <= maxTokens {
			chunkEnd = i + 1
		} else {
			flushChunk()
			chunkStart = i
			chunkEnd = i + 1
		}
	}

	flushChunk()

	return chunks, nil
}

var tableDelimRe = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?\s*$`)

// SplitSentences splits text into sentences, keeping markdown tables intact
// as single sentences. Both Western (. ! ?) and CJK (。 ！ ？) terminators
// end a sentence.
func SplitSentences(text string) []string {
	lines := strings.Split(text, "\n")
	var sentences []string
	var currentSentence strings.Builder

	isTableRow := func(line string) bool {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		return strings.Contains(trimmed, "|")
	}

	appendLine := func(trimmed string) {
		lineSentences := splitLineIntoSentences(trimmed)
		for _, sentence := range lineSentences {
			if currentSentence.Len() > 0 {
				currentSentence.WriteString(" ")
			}
			currentSentence.WriteString(sentence)

			if endsSentence(sentence) {
				sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
				currentSentence.Reset()
			}
		}
	}

	inTable := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inTable && isTableRow(line) && i+1 < len(lines) && tableDelimRe.MatchString(strings.TrimSpace(lines[i+1])) {
			if currentSentence.Len() > 0 {
				sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
				currentSentence.Reset()
			}

			inTable = true
			currentSentence.WriteString(line)
			continue
		}

		if !inTable && isTableRow(line) {
			if currentSentence.Len() > 0 {
				sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
				currentSentence.Reset()
			}

			sentences = append(sentences, trimmed)
			continue
		}

		if inTable {
			if trimmed == "" || !isTableRow(line) {
				inTable = false
				sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
				currentSentence.Reset()

				if trimmed != "" {
					appendLine(trimmed)
				}
			} else {
				currentSentence.WriteString("\n")
				currentSentence.WriteString(line)
			}
			continue
		}

		if trimmed == "" {
			if currentSentence.Len() > 0 {
				sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
				currentSentence.Reset()
			}
		} else {
			appendLine(trimmed)
		}
	}

	if currentSentence.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(currentSentence.String()))
	}

	var result []string
	for _, sentence := range sentences {
		if strings.TrimSpace(sentence) != "" {
			result = append(result, sentence)
		}
	}

	return result
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '」', '』', '”':
		return true
	}
	return false
}

func endsSentence(s string) bool {
	runes := []rune(strings.TrimSpace(s))
	for i := len(runes) - 1; i >= 0; i-- {
		if isClosing(runes[i]) {
			continue
		}
		return isTerminator(runes[i])
	}
	return false
}

func splitLineIntoSentences(line string) []string {
	runes := []rune(line)
	var sentences []string
	var current []rune

	for i := 0; i < len(runes); i++ {
		current = append(current, runes[i])

		if isTerminator(runes[i]) {
			// "1. item" style listings are not sentence boundaries
			if runes[i] == '.' && i > 0 && unicode.IsDigit(runes[i-1]) &&
				i+1 < len(runes) && runes[i+1] == ' ' {
				continue
			}

			j := i + 1
			for j < len(runes) && isTerminator(runes[j]) {
				current = append(current, runes[j])
				j++
			}
			for j < len(runes) && isClosing(runes[j]) {
				current = append(current, runes[j])
				j++
			}

			sentence := strings.TrimSpace(string(current))
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current = current[:0]
			i = j - 1
		}
	}

	remaining := strings.TrimSpace(string(current))
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}
