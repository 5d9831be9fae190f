package stream

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/latency"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"hello", []string{"hello"}},
		{"hello world", []string{"hello", " ", "world"}},
		{"a  b", []string{"a", " ", " ", "b"}},
		{"line\nbreak", []string{"line", "\n", "break"}},
		{" leading", []string{" ", "leading"}},
		{"trailing ", []string{"trailing", " "}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	input := "The quick  brown\tfox\njumps over the lazy dog. "
	if got := strings.Join(Tokenize(input), ""); got != input {
		t.Errorf("joined tokens = %q, want %q", got, input)
	}
}

func collectFrames(t *testing.T, ch <-chan string) []string {
	t.Helper()
	var frames []string
	deadline := time.After(5 * time.Second)
	for {
		select {
		case frame, ok := <-ch:
			if !ok {
				return frames
			}
			frames = append(frames, frame)
		case <-deadline:
			t.Fatal("timed out waiting for frames")
		}
	}
}

func chatChunk(t *testing.T, frame string) types.ChatCompletionStreamChunk {
	t.Helper()
	payload := strings.TrimSuffix(strings.TrimPrefix(frame, "data: "), "\n\n")
	var chunk types.ChatCompletionStreamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		t.Fatalf("unmarshal chunk %q: %v", frame, err)
	}
	return chunk
}

func TestChatStreamFrames(t *testing.T) {
	usage := &types.Usage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8}
	done := false

	s := NewChatStream("gpt-4o", "Hello there world", latency.Instant())
	s.Usage = usage
	s.OnComplete = func() { done = true }

	frames := collectFrames(t, s.Frames(context.Background()))

	// role + 5 tokens (3 words, 2 spaces) + finish + [DONE]
	if len(frames) != 8 {
		t.Fatalf("frames = %d, want 8", len(frames))
	}

	role := chatChunk(t, frames[0])
	if role.Choices[0].Delta.Role != "assistant" || role.Choices[0].Delta.Content != "" {
		t.Errorf("first chunk delta = %+v, want role only", role.Choices[0].Delta)
	}
	if role.Object != "chat.completion.chunk" || role.SystemFingerprint != types.SystemFingerprint {
		t.Errorf("chunk identity = %+v", role)
	}
	if !strings.HasPrefix(role.ID, "chatcmpl-") {
		t.Errorf("id = %q, want chatcmpl- prefix", role.ID)
	}

	var rebuilt strings.Builder
	for _, frame := range frames[1 : len(frames)-2] {
		chunk := chatChunk(t, frame)
		if chunk.ID != role.ID || chunk.Created != role.Created {
			t.Errorf("chunk identity drifted: %+v", chunk)
		}
		if chunk.Choices[0].FinishReason != nil {
			t.Errorf("content chunk has finish_reason: %+v", chunk)
		}
		rebuilt.WriteString(chunk.Choices[0].Delta.Content)
	}
	if rebuilt.String() != "Hello there world" {
		t.Errorf("rebuilt content = %q", rebuilt.String())
	}

	finish := chatChunk(t, frames[len(frames)-2])
	if finish.Choices[0].FinishReason == nil || *finish.Choices[0].FinishReason != "stop" {
		t.Errorf("finish chunk = %+v", finish.Choices[0])
	}
	if finish.Usage == nil || finish.Usage.TotalTokens != 8 {
		t.Errorf("finish usage = %+v", finish.Usage)
	}

	if frames[len(frames)-1] != DoneFrame {
		t.Errorf("last frame = %q, want %q", frames[len(frames)-1], DoneFrame)
	}

	if !done {
		t.Error("OnComplete did not fire")
	}
}

func TestChatStreamCancellation(t *testing.T) {
	done := false
	s := NewChatStream("gpt-4o", strings.Repeat("word ", 100), latency.Instant())
	s.OnComplete = func() { done = true }

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Frames(ctx)

	// Take a couple of frames, then walk away.
	<-ch
	<-ch
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if done {
					t.Error("OnComplete fired on a cancelled stream")
				}
				return
			}
		case <-deadline:
			t.Fatal("channel did not close after cancellation")
		}
	}
}

func TestChatStreamEmptyContent(t *testing.T) {
	s := NewChatStream("gpt-4o", "", latency.Instant())
	frames := collectFrames(t, s.Frames(context.Background()))

	// role + finish + [DONE]
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
}
