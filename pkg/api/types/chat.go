package types

import "strings"

// SystemFingerprint identifies the simulator backend on chat responses and
// stream chunks.
const SystemFingerprint = "fp_llmsim"

// ChatCompletionRequest represents an OpenAI-compatible chat completion
// request. Sampling parameters are accepted for wire compatibility but do
// not influence the simulated output.
type ChatCompletionRequest struct {
	// Model is the ID of the model to use (e.g., "gpt-4", "claude-3-opus").
	Model string `json:"model"`

	// Messages is the conversation history as a list of messages.
	Messages []Message `json:"messages"`

	// Temperature controls randomness in the response (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// MaxCompletionTokens supersedes MaxTokens for newer models.
	MaxCompletionTokens *int `json:"max_completion_tokens,omitempty"`

	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64 `json:"top_p,omitempty"`

	// N is the number of completions to generate for each prompt.
	N *int `json:"n,omitempty"`

	// Stream enables server-sent events (SSE) streaming.
	Stream bool `json:"stream,omitempty"`

	// Stop is a list of sequences where the API will stop generating tokens.
	Stop []string `json:"stop,omitempty"`

	// PresencePenalty penalizes new tokens based on presence so far.
	PresencePenalty *float64 `json:"presence_penalty,omitempty"`

	// FrequencyPenalty penalizes new tokens based on frequency so far.
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`

	// ReasoningEffort selects the reasoning effort for reasoning models:
	// "none", "minimal", "low", "medium", "high" or "xhigh".
	ReasoningEffort *string `json:"reasoning_effort,omitempty"`

	// User is a unique identifier for the end-user making the request.
	User string `json:"user,omitempty"`

	// Tools is a list of tools/functions the model can call. Accepted but
	// never invoked by the simulator.
	Tools []Tool `json:"tools,omitempty"`

	// ToolChoice controls which tool the model should use.
	ToolChoice interface{} `json:"tool_choice,omitempty"`

	// ResponseFormat specifies the format of the response.
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// Seed enables deterministic sampling. Accepted for compatibility.
	Seed *int `json:"seed,omitempty"`
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the author of the message ("system", "user", "assistant", or "tool").
	Role string `json:"role"`

	// Content is the text content of the message.
	// Can be a string or an array of content parts (for multimodal models).
	Content interface{} `json:"content"`

	// Name is the name of the author (optional).
	Name string `json:"name,omitempty"`

	// ToolCalls is a list of tool calls made by the assistant (optional).
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID is the ID of the tool call this message responds to.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Text flattens the message content to plain text. String content is
// returned as-is; content-part arrays are concatenated over their "text"
// fields; anything else yields an empty string.
func (m *Message) Text() string {
	switch c := m.Content.(type) {
	case string:
		return c
	case []interface{}:
		var b strings.Builder
		for _, p := range c {
			part, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			if text, ok := part["text"].(string); ok {
				b.WriteString(text)
			}
		}
		return b.String()
	default:
		return ""
	}
}

// Tool represents a function/tool that the model can call.
type Tool struct {
	// Type is always "function" for function calling.
	Type string `json:"type"`

	// Function describes the function to call.
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes a function that can be called by the model.
type FunctionDefinition struct {
	// Name is the name of the function to call.
	Name string `json:"name"`

	// Description explains what the function does.
	Description string `json:"description,omitempty"`

	// Parameters is a JSON Schema object describing the function parameters.
	Parameters map[string]interface{} `json:"parameters"`
}

// ToolCall represents a function call made by the model.
type ToolCall struct {
	// ID is a unique identifier for the tool call.
	ID string `json:"id"`

	// Type is always "function" for function calling.
	Type string `json:"type"`

	// Function contains the function name and arguments.
	Function FunctionCall `json:"function"`
}

// FunctionCall represents the function name and arguments.
type FunctionCall struct {
	// Name is the name of the function to call.
	Name string `json:"name"`

	// Arguments is a JSON string containing the function arguments.
	Arguments string `json:"arguments"`
}

// ResponseFormat specifies the format of the model's output.
type ResponseFormat struct {
	// Type is the format type ("text" or "json_object").
	Type string `json:"type"`
}

// Validate checks that required fields are present.
func (r *ChatCompletionRequest) Validate() error {
	if r.Model == "" {
		return &ValidationError{Field: "model", Message: "model is required"}
	}
	if len(r.Messages) == 0 {
		return &ValidationError{
			Field:   "messages",
			Message: "messages must contain at least one message",
		}
	}
	return nil
}

// ValidationError represents a request validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ChatCompletionResponse represents an OpenAI-compatible chat completion
// response, returned for non-streaming requests.
type ChatCompletionResponse struct {
	// ID is a unique identifier for the chat completion.
	ID string `json:"id"`

	// Object is always "chat.completion".
	Object string `json:"object"`

	// Created is the Unix timestamp of when the completion was created.
	Created int64 `json:"created"`

	// Model is the model used for the completion.
	Model string `json:"model"`

	// Choices is a list of completion choices (the simulator emits one).
	Choices []Choice `json:"choices"`

	// Usage contains token usage statistics.
	Usage Usage `json:"usage"`

	// SystemFingerprint identifies the backend configuration.
	SystemFingerprint string `json:"system_fingerprint,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	// Index is the index of this choice in the list of choices.
	Index int `json:"index"`

	// Message is the generated message.
	Message Message `json:"message"`

	// FinishReason explains why the model stopped generating tokens.
	FinishReason string `json:"finish_reason"`

	// LogProbs contains log probability information (optional).
	LogProbs interface{} `json:"logprobs,omitempty"`
}

// Usage contains token usage statistics.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens (prompt + completion).
	TotalTokens int `json:"total_tokens"`

	// CompletionTokensDetails breaks down the completion tokens.
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`
}

// CompletionTokensDetails breaks down completion token usage.
type CompletionTokensDetails struct {
	// ReasoningTokens is the number of tokens spent on internal reasoning.
	ReasoningTokens int `json:"reasoning_tokens"`
}

// ChatCompletionStreamChunk represents a chunk in a streaming response.
// Chunks are sent as Server-Sent Events when stream=true.
type ChatCompletionStreamChunk struct {
	// ID is a unique identifier shared by all chunks of one completion.
	ID string `json:"id"`

	// Object is always "chat.completion.chunk".
	Object string `json:"object"`

	// Created is the Unix timestamp of when the completion was created.
	Created int64 `json:"created"`

	// Model is the model used for the completion.
	Model string `json:"model"`

	// Choices is a list of streaming choices.
	Choices []StreamChoice `json:"choices"`

	// SystemFingerprint identifies the backend configuration.
	SystemFingerprint string `json:"system_fingerprint,omitempty"`

	// Usage contains token usage statistics; present only on the final
	// chunk.
	Usage *Usage `json:"usage,omitempty"`
}

// StreamChoice represents a single choice in a streaming response.
type StreamChoice struct {
	// Index is the index of this choice in the list of choices.
	Index int `json:"index"`

	// Delta contains incremental content.
	Delta Delta `json:"delta"`

	// FinishReason explains why the model stopped generating tokens.
	// Only present in the final chunk.
	FinishReason *string `json:"finish_reason"`

	// LogProbs contains log probability information (optional).
	LogProbs interface{} `json:"logprobs,omitempty"`
}

// Delta contains incremental content in a streaming response.
type Delta struct {
	// Role is the role of the message author (only in the first chunk).
	Role string `json:"role,omitempty"`

	// Content is the incremental text content.
	Content string `json:"content,omitempty"`

	// ToolCalls contains incremental tool call information.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
