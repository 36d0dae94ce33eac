package llm

import (
	"context"
	"unicode/utf8"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/textsplitter"
)

const (
	charsPerToken = 4
	// truncateSafety keeps truncated text a little under the budget, since
	// the character estimate is rough.
	truncateSafety = 0.9
	// TruncationMarker is appended to text cut by Truncate.
	TruncationMarker = "\n... (truncated)"
)

// Tokenizer counts tokens with the model when it can and falls back to a
// character based estimate otherwise. The model may be nil.
type Tokenizer struct {
	model llms.Model
}

// NewTokenizer creates a tokenizer backed by model.
func NewTokenizer(model llms.Model) *Tokenizer {
	return &Tokenizer{model: model}
}

// AsSplitter exposes the tokenizer to goframe's text splitters.
func (t *Tokenizer) AsSplitter() textsplitter.Tokenizer {
	return t
}

// CountTokens returns the number of tokens in the given text using the model.
func (t *Tokenizer) CountTokens(ctx context.Context, _, text string) int {
	if tk, ok := t.model.(llms.Tokenizer); ok {
		n, err := tk.CountTokens(ctx, text)
		if err != nil {
			return t.EstimateTokens(ctx, "", text)
		}
		return n
	}
	return t.EstimateTokens(ctx, "", text)
}

// EstimateTokens provides a fast, character-based estimation of token count.
func (t *Tokenizer) EstimateTokens(_ context.Context, _, text string) int {
	return utf8.RuneCountInString(text) / charsPerToken
}

// SplitTextByTokens splits text by token count (fallback to character-based splitting).
func (t *Tokenizer) SplitTextByTokens(_ context.Context, _, text string, maxTokens int) ([]string, error) {
	maxChars := maxTokens * charsPerToken
	runes := []rune(text)
	var chunks []string
	for len(runes) > maxChars {
		chunks = append(chunks, string(runes[:maxChars]))
		runes = runes[maxChars:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks, nil
}

// GetRecommendedChunkSize returns the recommended chunk size in characters.
func (t *Tokenizer) GetRecommendedChunkSize(_ context.Context, _ string) int {
	return 2000
}

// GetOptimalOverlapTokens returns the optimal overlap in tokens.
func (t *Tokenizer) GetOptimalOverlapTokens(_ context.Context, _ string) int {
	return 50
}

// GetMaxContextWindow returns the maximum context window for the model.
func (t *Tokenizer) GetMaxContextWindow(_ context.Context, _ string) int {
	return 8192
}

// Truncate shortens text so that it fits in maxTokens. The cut is made
// proportionally to the overshoot, with a safety margin, and marked with
// TruncationMarker.
func (t *Tokenizer) Truncate(ctx context.Context, text string, maxTokens int) string {
	current := t.CountTokens(ctx, "", text)
	if current <= maxTokens || current == 0 {
		return text
	}
	if maxTokens <= 0 {
		return TruncationMarker
	}
	runes := []rune(text)
	ratio := float64(maxTokens) / float64(current)
	keep := int(float64(len(runes)) * ratio * truncateSafety)
	return string(runes[:keep]) + TruncationMarker
}
