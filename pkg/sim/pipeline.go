package sim

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/config"
	"mercator-hq/llmsim/pkg/faults"
	"mercator-hq/llmsim/pkg/generator"
	"mercator-hq/llmsim/pkg/stats"
	"mercator-hq/llmsim/pkg/stream"
	"mercator-hq/llmsim/pkg/telemetry/metrics"
	"mercator-hq/llmsim/pkg/tokens"
)

// Per-message token overhead of the chat message framing, plus a fixed
// per-request priming cost. Matches the accounting OpenAI documents for
// chat completions.
const (
	messageOverheadTokens = 4
	requestOverheadTokens = 3
)

// Simulator runs the request pipeline shared by both API surfaces. It is
// safe for concurrent use; per-request configuration is read once from the
// manager at the start of each simulation.
type Simulator struct {
	manager   *config.Manager
	stats     *stats.Stats
	collector *metrics.Collector
	logger    *slog.Logger
}

// New creates a simulator. The metrics collector may be nil when metrics
// are disabled.
func New(manager *config.Manager, st *stats.Stats, collector *metrics.Collector) *Simulator {
	return &Simulator{
		manager:   manager,
		stats:     st,
		collector: collector,
		logger:    slog.Default().With("component", "sim"),
	}
}

// Stats returns the statistics aggregator.
func (s *Simulator) Stats() *stats.Stats {
	return s.stats
}

// ChatResult is the outcome of a chat completion simulation. Exactly one of
// Fault, Response, or Stream is set.
type ChatResult struct {
	// Fault is an injected error to render.
	Fault *faults.Fault

	// Response is a completed non-streaming response.
	Response *types.ChatCompletionResponse

	// Stream is a paced stream ready to be drained.
	Stream *stream.ChatStream
}

// ResponsesResult is the outcome of a Responses API simulation. Exactly one
// of Fault, Response, or Stream is set.
type ResponsesResult struct {
	// Fault is an injected error to render.
	Fault *faults.Fault

	// Response is a completed non-streaming response.
	Response *types.ResponsesResponse

	// Stream is a paced stream ready to be drained.
	Stream *stream.ResponsesStream
}

// ChatCompletion simulates a chat completion request. A nil result with a
// nil error means the context was cancelled mid-simulation.
func (s *Simulator) ChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) *ChatResult {
	cfg := s.manager.Current()
	start := time.Now()

	s.stats.RecordRequestStart(req.Model, req.Stream, stats.EndpointChatCompletions)
	if s.collector != nil {
		s.collector.RequestStarted()
	}

	if fault := s.inject(ctx, cfg, "chat_completions", req.Model); fault != nil {
		return &ChatResult{Fault: fault.fault}
	}
	if ctx.Err() != nil {
		s.abandon(req.Model, "chat_completions", start)
		return nil
	}

	profile := cfg.Latency.ProfileFor(req.Model)

	target := cfg.Response.TargetTokens
	if req.MaxCompletionTokens != nil {
		target = *req.MaxCompletionTokens
	} else if req.MaxTokens != nil {
		target = *req.MaxTokens
	}

	gen := generator.New(cfg.Response.Generator, target)
	content := gen.Generate(chatGeneratorRequest(req))

	promptTokens := chatPromptTokens(req)
	completionTokens := tokens.CountWithFallback(content, req.Model)
	reasoningTokens := ReasoningTokens(req.Model, completionTokens, req.ReasoningEffort)

	usage := types.Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens + reasoningTokens,
	}
	if reasoningTokens > 0 {
		usage.CompletionTokensDetails = &types.CompletionTokensDetails{
			ReasoningTokens: reasoningTokens,
		}
	}

	if req.Stream {
		cs := stream.NewChatStream(req.Model, content, profile)
		cs.Usage = &usage
		cs.OnComplete = func() {
			s.finish("chat_completions", req.Model, start, promptTokens, completionTokens, reasoningTokens)
		}
		return &ChatResult{Stream: cs}
	}

	// Non-streaming responses dwell for a single first-token delay.
	if !sleepCtx(ctx, profile.SampleTTFT()) {
		s.abandon(req.Model, "chat_completions", start)
		return nil
	}

	s.finish("chat_completions", req.Model, start, promptTokens, completionTokens, reasoningTokens)

	return &ChatResult{Response: &types.ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []types.Choice{{
			Index:        0,
			Message:      types.Message{Role: "assistant", Content: content},
			FinishReason: "stop",
		}},
		Usage:             usage,
		SystemFingerprint: types.SystemFingerprint,
	}}
}

// Responses simulates a Responses API request. A nil result with a nil
// error means the context was cancelled mid-simulation.
func (s *Simulator) Responses(ctx context.Context, req *types.ResponsesRequest) *ResponsesResult {
	cfg := s.manager.Current()
	start := time.Now()

	s.stats.RecordRequestStart(req.Model, req.Stream, stats.EndpointResponses)
	if s.collector != nil {
		s.collector.RequestStarted()
	}

	if fault := s.inject(ctx, cfg, "responses", req.Model); fault != nil {
		return &ResponsesResult{Fault: fault.fault}
	}
	if ctx.Err() != nil {
		s.abandon(req.Model, "responses", start)
		return nil
	}

	profile := cfg.Latency.ProfileFor(req.Model)

	target := cfg.Response.TargetTokens
	if req.MaxOutputTokens != nil {
		target = *req.MaxOutputTokens
	}

	gen := generator.New(cfg.Response.Generator, target)
	content := gen.Generate(responsesGeneratorRequest(req))

	inputTokens := tokens.CountWithFallback(req.InputText(), req.Model)
	outputTokens := tokens.CountWithFallback(content, req.Model)

	var effort, summaryMode *string
	if req.Reasoning != nil {
		effort = req.Reasoning.Effort
		summaryMode = req.Reasoning.Summary
	}
	reasoningTokens := ReasoningTokens(req.Model, outputTokens, effort)

	usage := types.ResponsesUsage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens + reasoningTokens,
	}
	var summaryText *string
	if reasoningTokens > 0 {
		usage.OutputTokensDetails = &types.OutputTokensDetails{
			ReasoningTokens: reasoningTokens,
		}
		if SummaryRequested(summaryMode) {
			text := generator.ReasoningSummary(reasoningTokens, *summaryMode)
			summaryText = &text
		}
	}

	if req.Stream {
		rs := stream.NewResponsesStream(req.Model, content, profile, usage)
		if reasoningTokens > 0 {
			rs.Reasoning = &stream.ReasoningStream{SummaryText: summaryText}
		}
		rs.OnComplete = func() {
			s.finish("responses", req.Model, start, inputTokens, outputTokens, reasoningTokens)
		}
		return &ResponsesResult{Stream: rs}
	}

	if !sleepCtx(ctx, profile.SampleTTFT()) {
		s.abandon(req.Model, "responses", start)
		return nil
	}

	s.finish("responses", req.Model, start, inputTokens, outputTokens, reasoningTokens)

	var resp *types.ResponsesResponse
	if reasoningTokens > 0 {
		resp = types.NewReasoningResponse(req.Model, content, summaryText, usage)
	} else {
		resp = types.NewResponsesResponse(req.Model, content, usage)
	}
	return &ResponsesResult{Response: resp}
}

// injectedFault pairs a fault with nothing else; it exists so inject can
// return nil cleanly.
type injectedFault struct {
	fault *faults.Fault
}

// inject runs error injection for a request. On a hit it applies the dwell
// (for timeouts), records the error, and returns the fault.
func (s *Simulator) inject(ctx context.Context, cfg *config.Config, endpoint, model string) *injectedFault {
	injector := faults.NewInjector(cfg.Errors.FaultConfig())
	fault := injector.MaybeInject()
	if fault == nil {
		return nil
	}

	// Simulated timeouts hold the connection before failing.
	if fault.Dwell > 0 {
		sleepCtx(ctx, fault.Dwell)
	}

	s.stats.RecordError(fault.Status)
	if s.collector != nil {
		s.collector.RecordInjectedError(fault.Kind.String())
		s.collector.RecordRequest(endpoint, model, strconv.Itoa(fault.Status), 0)
		s.collector.RequestFinished()
	}

	s.logger.Debug("Injected error",
		"endpoint", endpoint,
		"model", model,
		"kind", fault.Kind,
		"status", fault.Status,
	)

	return &injectedFault{fault: fault}
}

// finish records a successful completion in stats and metrics.
func (s *Simulator) finish(endpoint, model string, start time.Time, prompt, completion, reasoning int) {
	elapsed := time.Since(start)
	s.stats.RecordRequestEnd(elapsed, prompt, completion)
	if s.collector != nil {
		s.collector.RecordRequest(endpoint, model, "200", elapsed)
		s.collector.RecordTokens(model, prompt, completion, reasoning)
		s.collector.RequestFinished()
	}
}

// abandon records a request dropped by client disconnect. The latency
// aggregates are left untouched; only the in-flight accounting is released.
func (s *Simulator) abandon(model, endpoint string, start time.Time) {
	s.stats.RecordError(0)
	if s.collector != nil {
		s.collector.RecordRequest(endpoint, model, "cancelled", time.Since(start))
		s.collector.RequestFinished()
	}
}

// chatPromptTokens accounts the prompt side of a chat request: per-message
// content plus framing overhead, plus the fixed priming cost.
func chatPromptTokens(req *types.ChatCompletionRequest) int {
	total := requestOverheadTokens
	for _, msg := range req.Messages {
		total += tokens.CountWithFallback(msg.Text(), req.Model) + messageOverheadTokens
	}
	return total
}

// chatGeneratorRequest converts a chat request for the content generators.
func chatGeneratorRequest(req *types.ChatCompletionRequest) *generator.Request {
	messages := make([]generator.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, generator.Message{
			Role:    msg.Role,
			Content: msg.Text(),
		})
	}
	return &generator.Request{Model: req.Model, Messages: messages}
}

// responsesGeneratorRequest converts a Responses API request for the content
// generators. Instructions become a system message; a string input becomes
// a single user message.
func responsesGeneratorRequest(req *types.ResponsesRequest) *generator.Request {
	var messages []generator.Message
	if req.Instructions != nil && *req.Instructions != "" {
		messages = append(messages, generator.Message{Role: "system", Content: *req.Instructions})
	}
	if req.Input.Items == nil {
		if req.Input.Text != "" {
			messages = append(messages, generator.Message{Role: "user", Content: req.Input.Text})
		}
	} else {
		for _, item := range req.Input.Items {
			if item.Type != "" && item.Type != "message" {
				continue
			}
			messages = append(messages, generator.Message{
				Role:    item.Role,
				Content: item.Content.Flatten(),
			})
		}
	}
	return &generator.Request{Model: req.Model, Messages: messages}
}

// sleepCtx pauses for d, returning false if the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d == 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
