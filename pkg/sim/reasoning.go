package sim

import (
	"math"
	"strings"
)

// DefaultReasoningEffort is assumed when a reasoning model is used without
// an explicit effort setting.
const DefaultReasoningEffort = "medium"

// IsReasoningModel reports whether a model simulates internal reasoning.
// This covers the o-series and the gpt-5 family.
func IsReasoningModel(model string) bool {
	lower := strings.ToLower(model)
	return strings.HasPrefix(lower, "o1") ||
		strings.HasPrefix(lower, "o3") ||
		strings.HasPrefix(lower, "o4") ||
		strings.Contains(lower, "-o1") ||
		strings.Contains(lower, "-o3") ||
		strings.HasPrefix(lower, "gpt-5")
}

// effortMultiplier maps a reasoning effort level to the ratio of reasoning
// tokens over output tokens. Unknown levels behave like medium.
func effortMultiplier(effort string) float64 {
	switch strings.ToLower(effort) {
	case "none":
		return 0.0
	case "minimal":
		return 0.5
	case "low":
		return 1.5
	case "medium":
		return 3.0
	case "high":
		return 6.0
	case "xhigh":
		return 10.0
	default:
		return 3.0
	}
}

// ReasoningTokens computes the simulated reasoning token count for a model
// given its visible output size. Non-reasoning models always spend zero.
func ReasoningTokens(model string, outputTokens int, effort *string) int {
	if !IsReasoningModel(model) {
		return 0
	}
	level := DefaultReasoningEffort
	if effort != nil && *effort != "" {
		level = *effort
	}
	return int(math.Round(float64(outputTokens) * effortMultiplier(level)))
}

// SummaryRequested reports whether a reasoning summary should be generated
// for the given summary mode. Only "auto", "concise", and "detailed"
// produce a summary.
func SummaryRequested(mode *string) bool {
	if mode == nil {
		return false
	}
	switch strings.ToLower(*mode) {
	case "auto", "concise", "detailed":
		return true
	}
	return false
}
