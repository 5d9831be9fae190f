package latency

import (
	"math"
	"testing"
	"time"
)

func TestFromModel(t *testing.T) {
	tests := []struct {
		model string
		want  Profile
	}{
		{"gpt-5", GPT5()},
		{"gpt-5-mini", GPT5Mini()},
		{"gpt-5-nano", GPT5()},
		{"o3", OSeries()},
		{"o3-mini", OSeries()},
		{"o4-mini", OSeries()},
		{"gpt-4o", GPT4o()},
		{"gpt-4o-mini", GPT4o()},
		{"gpt-4-turbo", GPT4()},
		{"claude-opus-4", ClaudeOpus()},
		{"claude-sonnet-4", ClaudeSonnet()},
		{"claude-haiku-3", ClaudeHaiku()},
		{"gemini-2.5-pro", GeminiPro()},
		{"totally-unknown", GPT5()},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got := FromModel(tt.model)
			if got != tt.want {
				t.Errorf("FromModel(%q) = %+v, want %+v", tt.model, got, tt.want)
			}
		})
	}
}

func TestFromModelOrdering(t *testing.T) {
	// "gpt-5-mini" contains "gpt-5"; the more specific match must win.
	if got := FromModel("gpt-5-mini-2025"); got != GPT5Mini() {
		t.Errorf("expected gpt5_mini profile, got %+v", got)
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Profile
		ok   bool
	}{
		{"instant", Instant(), true},
		{"fast", Fast(), true},
		{"gpt5", GPT5(), true},
		{"gpt5_mini", GPT5Mini(), true},
		{"claude_sonnet", ClaudeSonnet(), true},
		{"gpt35_turbo", GPT35Turbo(), true},
		{"nonsense", Profile{}, false},
	}

	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FromName(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSampleZeroMean(t *testing.T) {
	p := Instant()
	for i := 0; i < 100; i++ {
		if d := p.SampleTTFT(); d != 0 {
			t.Fatalf("instant profile sampled %v, want 0", d)
		}
		if d := p.SampleTBT(); d != 0 {
			t.Fatalf("instant profile sampled %v, want 0", d)
		}
	}
}

func TestSampleZeroStddev(t *testing.T) {
	p := Profile{TTFTMeanMS: 50, TBTMeanMS: 7}
	for i := 0; i < 100; i++ {
		if d := p.SampleTTFT(); d != 50*time.Millisecond {
			t.Fatalf("sampled %v, want exactly 50ms", d)
		}
		if d := p.SampleTBT(); d != 7*time.Millisecond {
			t.Fatalf("sampled %v, want exactly 7ms", d)
		}
	}
}

func TestSampleFloor(t *testing.T) {
	// Huge stddev relative to the mean forces draws below 1ms; all samples
	// must still be at least 1ms.
	p := Profile{TTFTMeanMS: 2, TTFTStddevMS: 50}
	for i := 0; i < 1000; i++ {
		if d := p.SampleTTFT(); d < time.Millisecond {
			t.Fatalf("sampled %v, want >= 1ms", d)
		}
	}
}

func TestSampleDistribution(t *testing.T) {
	p := Profile{TTFTMeanMS: 100, TTFTStddevMS: 10}

	var sum float64
	const n = 1000
	for i := 0; i < n; i++ {
		sum += float64(p.SampleTTFT()) / float64(time.Millisecond)
	}
	mean := sum / n

	if math.Abs(mean-100) > 20 {
		t.Errorf("sample mean %.2f outside [80, 120]", mean)
	}
}

func TestSampleWholeMilliseconds(t *testing.T) {
	p := Profile{TTFTMeanMS: 5.5, TTFTStddevMS: 2.5}
	for i := 0; i < 1000; i++ {
		if d := p.SampleTTFT(); d%time.Millisecond != 0 {
			t.Fatalf("sampled %v, want whole milliseconds", d)
		}
	}

	// The exact-mean path truncates fractional means the same way.
	exact := Profile{TTFTMeanMS: 2.7}
	if d := exact.SampleTTFT(); d != 2*time.Millisecond {
		t.Errorf("sampled %v, want 2ms", d)
	}
}
