package generate

import "strings"

// EstimateTokens gives a rough token count using a words-based heuristic.
// Exact tokenization is not required for budget clamping.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	// Roughly 1.33 tokens per English word.
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// ClampToBudget trims text so it stays within roughly maxTokens, cutting
// at a line boundary. A non-positive budget disables clamping.
func ClampToBudget(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}
	// ~4 bytes per token for English text.
	limit := maxTokens * 4
	if limit >= len(text) {
		return text
	}
	if cut := strings.LastIndexByte(text[:limit], '\n'); cut > 0 {
		return text[:cut]
	}
	return text[:limit]
}
