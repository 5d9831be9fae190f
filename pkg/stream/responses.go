package stream

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/latency"
)

// ReasoningStream configures the reasoning phase of a responses stream.
// A nil SummaryText emits the reasoning output item without summary events.
type ReasoningStream struct {
	// SummaryText is the reasoning summary to stream before the message.
	SummaryText *string
}

// ResponsesStream emits a Responses API response as the full event
// lifecycle: response.created, response.in_progress, optional reasoning
// item with paced summary deltas, the assistant message with paced text
// deltas, then response.completed. Sequence numbers are contiguous across
// reasoning and message deltas.
type ResponsesStream struct {
	// ResponseID is the response ID shared by all events ("resp_<uuid>").
	ResponseID string

	// MessageID is the message output item ID ("msg_<uuid>").
	MessageID string

	// Model is echoed on the response snapshots.
	Model string

	// CreatedAt is the Unix timestamp shared by the response snapshots.
	CreatedAt int64

	// Content is the full message text to stream.
	Content string

	// Latency paces the stream.
	Latency latency.Profile

	// Usage is attached to the final response.completed snapshot.
	Usage types.ResponsesUsage

	// Reasoning, when set, emits a reasoning item before the message.
	Reasoning *ReasoningStream

	// OnComplete fires once after the final frame is consumed. It does not
	// fire when the stream is cancelled.
	OnComplete func()
}

// NewResponsesStream creates a responses stream with fresh IDs.
func NewResponsesStream(model, content string, profile latency.Profile, usage types.ResponsesUsage) *ResponsesStream {
	return &ResponsesStream{
		ResponseID: "resp_" + uuid.NewString(),
		MessageID:  "msg_" + uuid.NewString(),
		Model:      model,
		CreatedAt:  time.Now().Unix(),
		Content:    content,
		Latency:    profile,
		Usage:      usage,
	}
}

// snapshot builds a response object in the given lifecycle status.
func (s *ResponsesStream) snapshot(status string, output []types.OutputItem, final bool) *types.ResponsesResponse {
	resp := &types.ResponsesResponse{
		ID:        s.ResponseID,
		Object:    "response",
		CreatedAt: s.CreatedAt,
		Model:     s.Model,
		Status:    status,
		Output:    output,
	}
	if final {
		resp.OutputText = &s.Content
		usage := s.Usage
		resp.Usage = &usage
	}
	return resp
}

// Frames starts the emitter goroutine and returns its frame channel.
func (s *ResponsesStream) Frames(ctx context.Context) <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		emit := func(event string, payload interface{}) bool {
			return send(ctx, ch, formatEvent(event, payload))
		}

		inProgress := s.snapshot(types.StatusInProgress, []types.OutputItem{}, false)
		if !emit("response.created", types.ResponseEvent{
			Type: "response.created", Response: inProgress,
		}) {
			return
		}

		if !sleepCtx(ctx, s.Latency.SampleTTFT()) {
			return
		}

		if !emit("response.in_progress", types.ResponseEvent{
			Type: "response.in_progress", Response: inProgress,
		}) {
			return
		}

		seq := 0
		messageIndex := 0
		var output []types.OutputItem

		if s.Reasoning != nil {
			messageIndex = 1
			reasoningID := "rs_" + uuid.NewString()

			if !emit("response.output_item.added", types.OutputItemEvent{
				Type:        "response.output_item.added",
				OutputIndex: 0,
				Item:        types.NewReasoningItem(reasoningID, types.ItemInProgress, nil),
			}) {
				return
			}

			if s.Reasoning.SummaryText != nil {
				summary := *s.Reasoning.SummaryText

				if !emit("response.reasoning_summary_part.added", types.SummaryPartEvent{
					Type:        "response.reasoning_summary_part.added",
					OutputIndex: 0, SummaryIndex: 0,
					Part: types.ReasoningSummary{Type: "summary_text", Text: ""},
				}) {
					return
				}

				for _, token := range Tokenize(summary) {
					if !sleepCtx(ctx, s.Latency.SampleTBT()) {
						return
					}
					if !emit("response.reasoning_summary_text.delta", types.SummaryTextDeltaEvent{
						Type:        "response.reasoning_summary_text.delta",
						OutputIndex: 0, SummaryIndex: 0,
						Delta: token, SequenceNumber: seq,
					}) {
						return
					}
					seq++
				}

				if !emit("response.reasoning_summary_text.done", types.SummaryTextDoneEvent{
					Type:        "response.reasoning_summary_text.done",
					OutputIndex: 0, SummaryIndex: 0,
					Text: summary,
				}) {
					return
				}
				if !emit("response.reasoning_summary_part.done", types.SummaryPartEvent{
					Type:        "response.reasoning_summary_part.done",
					OutputIndex: 0, SummaryIndex: 0,
					Part: types.ReasoningSummary{Type: "summary_text", Text: summary},
				}) {
					return
				}
			}

			reasoningDone := types.NewReasoningItem(reasoningID, types.ItemCompleted, s.Reasoning.SummaryText)
			if !emit("response.output_item.done", types.OutputItemEvent{
				Type:        "response.output_item.done",
				OutputIndex: 0,
				Item:        reasoningDone,
			}) {
				return
			}
			output = append(output, reasoningDone)
		}

		if !emit("response.output_item.added", types.OutputItemEvent{
			Type:        "response.output_item.added",
			OutputIndex: messageIndex,
			Item:        types.NewMessageItem(s.MessageID, types.ItemInProgress, ""),
		}) {
			return
		}

		if !emit("response.content_part.added", types.ContentPartEvent{
			Type:        "response.content_part.added",
			OutputIndex: messageIndex, ContentIndex: 0,
			Part: types.OutputContentPart{Type: "output_text", Text: ""},
		}) {
			return
		}

		for _, token := range Tokenize(s.Content) {
			if !sleepCtx(ctx, s.Latency.SampleTBT()) {
				return
			}
			if !emit("response.output_text.delta", types.TextDeltaEvent{
				Type:        "response.output_text.delta",
				OutputIndex: messageIndex, ContentIndex: 0,
				Delta: token, SequenceNumber: seq,
			}) {
				return
			}
			seq++
		}

		if !emit("response.output_text.done", types.TextDoneEvent{
			Type:        "response.output_text.done",
			OutputIndex: messageIndex, ContentIndex: 0,
			Text: s.Content,
		}) {
			return
		}
		if !emit("response.content_part.done", types.ContentPartEvent{
			Type:        "response.content_part.done",
			OutputIndex: messageIndex, ContentIndex: 0,
			Part: types.OutputContentPart{Type: "output_text", Text: s.Content},
		}) {
			return
		}

		messageDone := types.NewMessageItem(s.MessageID, types.ItemCompleted, s.Content)
		if !emit("response.output_item.done", types.OutputItemEvent{
			Type:        "response.output_item.done",
			OutputIndex: messageIndex,
			Item:        messageDone,
		}) {
			return
		}
		output = append(output, messageDone)

		if !emit("response.completed", types.ResponseEvent{
			Type:     "response.completed",
			Response: s.snapshot(types.StatusCompleted, output, true),
		}) {
			return
		}

		if s.OnComplete != nil {
			s.OnComplete()
		}
	}()

	return ch
}
