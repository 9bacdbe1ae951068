package finetune

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/privatetune/backend/internal/db"
	"github.com/privatetune/backend/pkg/graph"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultSystemPrompt is used when a job does not provide its own.
const DefaultSystemPrompt = "You are a knowledgeable assistant. Answer using the curated knowledge you were trained on."

// Message is one turn of a chat-format training example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Example is one JSONL line of a chat-format fine-tuning dataset.
type Example struct {
	Messages []Message `json:"messages"`
}

// BuildDataset turns curated knowledge points into a chat-format JSONL
// training file. Each point becomes a system/user/assistant triple where the
// user turn is derived from the point's keywords and the assistant turn is
// the point content. Points are repeated according to their rounded weight so
// heavier points carry more gradient during training.
//
// Excluded points must be filtered out by the caller's query.
func BuildDataset(points []db.KnowledgePoint, systemPrompt string) ([]byte, int, error) {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	var buf bytes.Buffer
	examples := 0
	for _, p := range points {
		content := strings.TrimSpace(p.Content)
		if content == "" {
			continue
		}

		example := Example{
			Messages: []Message{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrompt(p)},
				{Role: "assistant", Content: content},
			},
		}
		line, err := json.Marshal(example)
		if err != nil {
			return nil, 0, err
		}

		repeats := graph.ClampWeight(p.Weight)
		for range repeats {
			buf.Write(line)
			buf.WriteByte('\n')
			examples++
		}
	}

	if examples == 0 {
		return nil, 0, fmt.Errorf("no trainable knowledge points")
	}
	return buf.Bytes(), examples, nil
}

func userPrompt(p db.KnowledgePoint) string {
	keywords := graph.NormalizeKeywords(p.Keywords)
	if len(keywords) > 0 {
		return fmt.Sprintf("Explain the following topics from %s: %s", p.DocumentName, strings.Join(keywords, ", "))
	}

	words := strings.Fields(p.Content)
	if len(words) > 8 {
		words = words[:8]
	}
	return fmt.Sprintf("Tell me about: %s", strings.Join(words, " "))
}

// CountTokens returns the token count of a training file under the given
// tiktoken encoding.
func CountTokens(data []byte, encoder string) (int, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(string(data), nil, nil)), nil
}

// EstimateCost converts a training token count into dollars at the given
// per-1k-token price, rounded to four decimal places.
func EstimateCost(tokens int, pricePer1K float64) float64 {
	cost := float64(tokens) / 1000.0 * pricePer1K
	return math.Round(cost*10000) / 10000
}
