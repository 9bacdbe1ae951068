package finetune

import (
	"strings"

	"github.com/privatetune/backend/internal/util"
)

// Supported fine-tuning platforms.
const (
	PlatformOpenAI = "openai"
)

// Terminal fine-tuning job states as reported by providers.
var terminalStatuses = map[string]bool{
	"succeeded": true,
	"failed":    true,
	"cancelled": true,
}

// IsTerminalStatus reports whether a job has finished and no longer needs
// polling.
func IsTerminalStatus(status string) bool {
	return terminalStatuses[strings.ToLower(status)]
}

// StatusProgress maps a provider job status to a coarse progress fraction
// for display.
func StatusProgress(status string) float64 {
	switch strings.ToLower(status) {
	case "validating_files":
		return 0.1
	case "queued":
		return 0.2
	case "running":
		return 0.5
	case "succeeded":
		return 1.0
	case "failed", "cancelled":
		return 1.0
	default:
		return 0.0
	}
}

// PricePer1K returns the training price per 1000 tokens for a base model.
// The FINETUNE_PRICE_PER_1K env var overrides the built-in table.
func PricePer1K(baseModel string) float64 {
	if override := util.GetEnvNumeric("FINETUNE_PRICE_PER_1K", 0); override > 0 {
		return override
	}

	model := strings.ToLower(baseModel)
	switch {
	case strings.Contains(model, "gpt-4o-mini"):
		return 0.003
	case strings.Contains(model, "gpt-4o"):
		return 0.025
	case strings.Contains(model, "gpt-3.5"):
		return 0.008
	default:
		return 0.008
	}
}
