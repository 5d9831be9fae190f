package tokens

import (
	"testing"
)

func TestEncodingForModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-5", "o200k_base"},
		{"gpt-5-mini", "o200k_base"},
		{"gpt-4o", "o200k_base"},
		{"gpt-4o-mini", "o200k_base"},
		{"chatgpt-4o-latest", "o200k_base"},
		{"o1-preview", "o200k_base"},
		{"o3-mini", "o200k_base"},
		{"o4-mini", "o200k_base"},
		{"gpt-4", "cl100k_base"},
		{"gpt-4-turbo", "cl100k_base"},
		{"text-embedding-3-small", "cl100k_base"},
		{"claude-sonnet-4", "cl100k_base"},
		{"gemini-2.5-pro", "cl100k_base"},
		{"davinci-002", "p50k_base"},
		{"code-davinci-002", "p50k_base"},
		{"babbage-002", "r50k_base"},
		{"some-unknown-model", "cl100k_base"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := EncodingForModel(tt.model); got != tt.want {
				t.Errorf("EncodingForModel(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestCountEmpty(t *testing.T) {
	n, err := Count("", "gpt-4")
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 0 {
		t.Errorf("Count(\"\") = %d, want 0", n)
	}
}

func TestCount(t *testing.T) {
	n, err := Count("Hello, world!", "gpt-4")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	// "Hello, world!" is 4 tokens under cl100k_base.
	if n != 4 {
		t.Errorf("Count(\"Hello, world!\") = %d, want 4", n)
	}
}

func TestCountDeterministic(t *testing.T) {
	const text = "The quick brown fox jumps over the lazy dog."
	first, err := Count(text, "gpt-4o")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	for i := 0; i < 10; i++ {
		n, err := Count(text, "gpt-4o")
		if err != nil {
			t.Fatalf("Count() error on repeat: %v", err)
		}
		if n != first {
			t.Fatalf("Count() = %d, want %d (deterministic)", n, first)
		}
	}
}

func TestCountWithFallback(t *testing.T) {
	// Whatever the encoder situation, the fallback path must return a
	// positive count for non-empty text.
	if n := CountWithFallback("one two three", "gpt-4"); n <= 0 {
		t.Errorf("CountWithFallback() = %d, want > 0", n)
	}
	if n := CountWithFallback("", "gpt-4"); n != 0 {
		t.Errorf("CountWithFallback(\"\") = %d, want 0", n)
	}
}
