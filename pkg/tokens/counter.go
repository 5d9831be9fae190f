// Package tokens provides BPE token counting for usage accounting.
//
// Model names are routed to a tiktoken encoding (o200k_base, cl100k_base,
// p50k_base or r50k_base); encoders are constructed lazily and cached for
// the life of the process. Counting is deterministic for a given text and
// encoding, which makes simulated usage reproducible.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	mu       sync.Mutex
	encoders = make(map[string]*tiktoken.Tiktoken)
)

// EncodingForModel maps a model name to its tiktoken encoding name. Checks
// are ordered so "gpt-4o" matches before "gpt-4". Unknown models use
// cl100k_base.
func EncodingForModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "gpt-5"),
		strings.Contains(m, "gpt-4o"),
		strings.Contains(m, "chatgpt-4o"),
		strings.HasPrefix(m, "o1"),
		strings.HasPrefix(m, "o3"),
		strings.HasPrefix(m, "o4"):
		return "o200k_base"
	case strings.Contains(m, "gpt-4"),
		strings.Contains(m, "text-embedding"),
		strings.Contains(m, "claude"),
		strings.Contains(m, "gemini"):
		return "cl100k_base"
	case strings.Contains(m, "davinci"),
		strings.Contains(m, "code-"):
		return "p50k_base"
	case strings.Contains(m, "ada"),
		strings.Contains(m, "babbage"),
		strings.Contains(m, "curie"):
		return "r50k_base"
	default:
		return "cl100k_base"
	}
}

// encoder returns the cached encoder for an encoding name, constructing it
// on first use.
func encoder(encoding string) (*tiktoken.Tiktoken, error) {
	mu.Lock()
	defer mu.Unlock()

	if enc, ok := encoders[encoding]; ok {
		return enc, nil
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encoding, err)
	}
	encoders[encoding] = enc
	return enc, nil
}

// Count returns the number of BPE tokens in text for the given model.
// Special-token text is counted as ordinary input. Empty text counts as 0.
func Count(text, model string) (int, error) {
	if text == "" {
		return 0, nil
	}

	enc, err := encoder(EncodingForModel(model))
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, []string{"all"}, nil)), nil
}

// CountWithFallback counts tokens for the given model, falling back to a
// whitespace word count when the encoder cannot be constructed.
func CountWithFallback(text, model string) int {
	n, err := Count(text, model)
	if err != nil {
		return len(strings.Fields(text))
	}
	return n
}
