// Package latency models the timing behavior of simulated model responses.
//
// A Profile carries four parameters: mean and standard deviation for the
// time-to-first-token (TTFT) and for the time-between-tokens (TBT), all in
// milliseconds. Samples are drawn from a normal distribution and floored at
// 1ms so a nonzero mean never produces a zero or negative delay.
package latency

import (
	"math/rand"
	"strings"
	"time"
)

// Profile describes the latency characteristics of a simulated model.
type Profile struct {
	// TTFTMeanMS is the mean time-to-first-token in milliseconds.
	TTFTMeanMS float64

	// TTFTStddevMS is the standard deviation of the TTFT in milliseconds.
	TTFTStddevMS float64

	// TBTMeanMS is the mean time-between-tokens in milliseconds.
	TBTMeanMS float64

	// TBTStddevMS is the standard deviation of the TBT in milliseconds.
	TBTStddevMS float64
}

// Preset profiles. Values approximate the observed behavior of each model
// family: reasoning models think before the first token, small models are
// fast throughout.
func GPT5() Profile        { return Profile{600, 150, 40, 12} }
func GPT5Mini() Profile    { return Profile{300, 80, 20, 6} }
func OSeries() Profile     { return Profile{2000, 500, 30, 10} }
func GPT4() Profile        { return Profile{800, 200, 50, 15} }
func GPT4o() Profile       { return Profile{400, 100, 25, 8} }
func GPT35Turbo() Profile  { return Profile{300, 80, 20, 5} }
func ClaudeOpus() Profile  { return Profile{1000, 250, 60, 20} }
func ClaudeSonnet() Profile { return Profile{500, 120, 30, 10} }
func ClaudeHaiku() Profile { return Profile{200, 50, 15, 5} }
func GeminiPro() Profile   { return Profile{600, 150, 35, 10} }

// Fast returns a profile suitable for load tests: near-instant but still
// exercising the streaming pacing path.
func Fast() Profile { return Profile{10, 2, 1, 0} }

// Instant returns a zero-delay profile.
func Instant() Profile { return Profile{} }

// FromModel picks a preset from a model name using ordered substring checks.
// More specific names are checked before their prefixes ("gpt-5-mini" before
// "gpt-5"). Unknown models get the GPT5 profile.
func FromModel(model string) Profile {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "gpt-5-mini"):
		return GPT5Mini()
	case strings.Contains(m, "gpt-5"):
		return GPT5()
	case strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4"):
		return OSeries()
	case strings.Contains(m, "gpt-4o"):
		return GPT4o()
	case strings.Contains(m, "gpt-4"):
		return GPT4()
	case strings.Contains(m, "opus"):
		return ClaudeOpus()
	case strings.Contains(m, "sonnet"):
		return ClaudeSonnet()
	case strings.Contains(m, "haiku"):
		return ClaudeHaiku()
	case strings.Contains(m, "gemini"):
		return GeminiPro()
	default:
		return GPT5()
	}
}

// FromName resolves a configured profile name. The second return value is
// false when the name is not a known preset.
func FromName(name string) (Profile, bool) {
	switch strings.ToLower(name) {
	case "gpt5":
		return GPT5(), true
	case "gpt5_mini", "gpt5-mini":
		return GPT5Mini(), true
	case "o_series", "o-series":
		return OSeries(), true
	case "gpt4":
		return GPT4(), true
	case "gpt4o":
		return GPT4o(), true
	case "gpt35_turbo", "gpt35-turbo":
		return GPT35Turbo(), true
	case "claude_opus", "claude-opus":
		return ClaudeOpus(), true
	case "claude_sonnet", "claude-sonnet":
		return ClaudeSonnet(), true
	case "claude_haiku", "claude-haiku":
		return ClaudeHaiku(), true
	case "gemini_pro", "gemini-pro":
		return GeminiPro(), true
	case "fast":
		return Fast(), true
	case "instant":
		return Instant(), true
	default:
		return Profile{}, false
	}
}

// SampleTTFT draws a time-to-first-token delay.
func (p Profile) SampleTTFT() time.Duration {
	return sample(p.TTFTMeanMS, p.TTFTStddevMS)
}

// SampleTBT draws a time-between-tokens delay.
func (p Profile) SampleTBT() time.Duration {
	return sample(p.TBTMeanMS, p.TBTStddevMS)
}

// sample draws from N(mean, stddev) in milliseconds. A zero mean yields zero
// delay, a zero stddev yields exactly the mean, and any other draw is floored
// at 1ms. Fractional milliseconds are truncated.
func sample(mean, stddev float64) time.Duration {
	if mean == 0 {
		return 0
	}
	if stddev == 0 {
		return time.Duration(mean) * time.Millisecond
	}
	ms := rand.NormFloat64()*stddev + mean
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}
