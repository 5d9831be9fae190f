package stream

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/latency"
)

// ChatStream emits a chat completion as a paced sequence of SSE chunks:
// a role chunk after the TTFT delay, one content chunk per token with TBT
// pacing, a finish chunk carrying the usage, then the [DONE] frame.
type ChatStream struct {
	// ID is the completion ID shared by every chunk ("chatcmpl-<uuid>").
	ID string

	// Model is echoed on every chunk.
	Model string

	// Created is the Unix timestamp shared by every chunk.
	Created int64

	// Content is the full text to stream.
	Content string

	// Latency paces the stream.
	Latency latency.Profile

	// Usage, when set, is attached to the finish chunk.
	Usage *types.Usage

	// OnComplete fires once after the final frame is consumed. It does not
	// fire when the stream is cancelled.
	OnComplete func()
}

// NewChatStream creates a chat stream with a fresh completion ID.
func NewChatStream(model, content string, profile latency.Profile) *ChatStream {
	return &ChatStream{
		ID:      "chatcmpl-" + uuid.NewString(),
		Model:   model,
		Created: time.Now().Unix(),
		Content: content,
		Latency: profile,
	}
}

// chunk builds one stream chunk sharing the stream's identity fields.
func (s *ChatStream) chunk(delta types.Delta, finishReason *string, usage *types.Usage) types.ChatCompletionStreamChunk {
	return types.ChatCompletionStreamChunk{
		ID:      s.ID,
		Object:  "chat.completion.chunk",
		Created: s.Created,
		Model:   s.Model,
		Choices: []types.StreamChoice{{
			Index:        0,
			Delta:        delta,
			FinishReason: finishReason,
		}},
		SystemFingerprint: types.SystemFingerprint,
		Usage:             usage,
	}
}

// Frames starts the emitter goroutine and returns its frame channel. The
// channel is closed when the stream finishes or the context is cancelled.
func (s *ChatStream) Frames(ctx context.Context) <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		tokens := Tokenize(s.Content)

		if !sleepCtx(ctx, s.Latency.SampleTTFT()) {
			return
		}

		// First chunk carries the role only.
		if !send(ctx, ch, formatData(s.chunk(types.Delta{Role: "assistant"}, nil, nil))) {
			return
		}

		for _, token := range tokens {
			if !sleepCtx(ctx, s.Latency.SampleTBT()) {
				return
			}
			if !send(ctx, ch, formatData(s.chunk(types.Delta{Content: token}, nil, nil))) {
				return
			}
		}

		finish := "stop"
		if !send(ctx, ch, formatData(s.chunk(types.Delta{}, &finish, s.Usage))) {
			return
		}
		if !send(ctx, ch, DoneFrame) {
			return
		}

		if s.OnComplete != nil {
			s.OnComplete()
		}
	}()

	return ch
}
