package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResponsesInput is the "input" field of a Responses API request: either a
// plain string or an array of input items.
type ResponsesInput struct {
	// Text holds string-form input.
	Text string

	// Items holds array-form input. When Items is non-nil it takes
	// precedence over Text.
	Items []InputItem
}

// UnmarshalJSON accepts either a JSON string or an array of input items.
func (in *ResponsesInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		in.Text = s
		in.Items = nil
		return nil
	}

	var items []InputItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	in.Items = items
	return nil
}

// MarshalJSON emits the string form unless items are present.
func (in ResponsesInput) MarshalJSON() ([]byte, error) {
	if in.Items != nil {
		return json.Marshal(in.Items)
	}
	return json.Marshal(in.Text)
}

// InputItem is one element of array-form input. Type is "message" for
// conversation messages or "function_call_output" for tool results.
type InputItem struct {
	// Type discriminates the item kind.
	Type string `json:"type"`

	// Role is the message author ("user", "assistant", "system",
	// "developer"); only set for message items.
	Role string `json:"role,omitempty"`

	// Content is the message content; only set for message items.
	Content MessageContent `json:"content,omitempty"`

	// CallID references the originating tool call for function results.
	CallID string `json:"call_id,omitempty"`

	// Output is the tool result payload for function results.
	Output string `json:"output,omitempty"`
}

// MessageContent is either a plain string or an array of content parts.
type MessageContent struct {
	Text  string
	Parts []ContentPart
}

// UnmarshalJSON accepts either a JSON string or an array of content parts.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Parts = nil
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	c.Parts = parts
	return nil
}

// MarshalJSON emits the string form unless parts are present.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// Flatten joins the textual content of the message. Part arrays contribute
// only their input_text parts, joined by spaces.
func (c *MessageContent) Flatten() string {
	if c.Parts == nil {
		return c.Text
	}
	texts := make([]string, 0, len(c.Parts))
	for _, p := range c.Parts {
		if p.Type == "input_text" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, " ")
}

// ContentPart is one part of a multimodal message.
type ContentPart struct {
	// Type is "input_text", "input_image" or "input_file".
	Type string `json:"type"`

	// Text is the text for input_text parts.
	Text string `json:"text,omitempty"`

	// ImageURL is the image location for input_image parts.
	ImageURL string `json:"image_url,omitempty"`

	// FileURL is the file location for input_file parts.
	FileURL string `json:"file_url,omitempty"`

	// FileID references an uploaded file for input_file parts.
	FileID string `json:"file_id,omitempty"`
}

// ReasoningConfig controls simulated reasoning behavior.
type ReasoningConfig struct {
	// Effort is "none", "minimal", "low", "medium", "high" or "xhigh".
	Effort *string `json:"effort,omitempty"`

	// Summary requests a reasoning summary: "auto", "concise" or "detailed".
	Summary *string `json:"summary,omitempty"`
}

// ResponsesRequest represents a Responses API request.
type ResponsesRequest struct {
	// Model to use for generation.
	Model string `json:"model"`

	// Input is the prompt: a string or an array of input items.
	Input ResponsesInput `json:"input"`

	// Instructions is the system prompt for this request.
	Instructions *string `json:"instructions,omitempty"`

	// Temperature is the sampling temperature (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling parameter.
	TopP *float64 `json:"top_p,omitempty"`

	// MaxOutputTokens caps the generated tokens.
	MaxOutputTokens *int `json:"max_output_tokens,omitempty"`

	// Stream enables server-sent events.
	Stream bool `json:"stream,omitempty"`

	// Reasoning configures simulated reasoning for reasoning models.
	Reasoning *ReasoningConfig `json:"reasoning,omitempty"`

	// Metadata is custom request metadata, echoed back unchanged.
	Metadata map[string]string `json:"metadata,omitempty"`

	// PreviousResponseID chains to a previous response. Accepted for wire
	// compatibility; the simulator holds no conversation state.
	PreviousResponseID *string `json:"previous_response_id,omitempty"`

	// Tools are tool definitions; accepted but never invoked.
	Tools json.RawMessage `json:"tools,omitempty"`

	// ToolChoice controls tool usage.
	ToolChoice interface{} `json:"tool_choice,omitempty"`
}

// Validate checks that required fields are present.
func (r *ResponsesRequest) Validate() error {
	if r.Model == "" {
		return &ValidationError{Field: "model", Message: "model is required"}
	}
	return nil
}

// InputText flattens the request input to a single text block for content
// generation and token accounting: instructions first, then the string
// input or each message as "role: content", joined by newlines.
func (r *ResponsesRequest) InputText() string {
	var parts []string
	if r.Instructions != nil {
		parts = append(parts, *r.Instructions)
	}

	if r.Input.Items == nil {
		parts = append(parts, r.Input.Text)
	} else {
		for _, item := range r.Input.Items {
			if item.Type != "message" {
				continue
			}
			parts = append(parts, item.Role+": "+item.Content.Flatten())
		}
	}

	return strings.Join(parts, "\n")
}

// Response status values.
const (
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusInProgress = "in_progress"
	StatusQueued     = "queued"
	StatusIncomplete = "incomplete"
)

// Output item status values.
const (
	ItemCompleted  = "completed"
	ItemInProgress = "in_progress"
	ItemFailed     = "failed"
)

// ResponsesResponse represents a Responses API response object.
type ResponsesResponse struct {
	// ID is the unique response identifier ("resp_<uuid>").
	ID string `json:"id"`

	// Object is always "response".
	Object string `json:"object"`

	// CreatedAt is the Unix timestamp of creation.
	CreatedAt int64 `json:"created_at"`

	// Model is the model used.
	Model string `json:"model"`

	// Status is the response lifecycle status.
	Status string `json:"status"`

	// Output is the list of output items.
	Output []OutputItem `json:"output"`

	// OutputText is the flattened text output.
	OutputText *string `json:"output_text,omitempty"`

	// Usage is the token usage; absent on in-progress snapshots.
	Usage *ResponsesUsage `json:"usage,omitempty"`

	// Error carries failure details.
	Error *ResponsesError `json:"error,omitempty"`

	// Metadata echoes the request metadata.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewResponsesResponse builds a completed response with a single assistant
// message output item.
func NewResponsesResponse(model, content string, usage ResponsesUsage) *ResponsesResponse {
	return &ResponsesResponse{
		ID:         "resp_" + uuid.NewString(),
		Object:     "response",
		CreatedAt:  time.Now().Unix(),
		Model:      model,
		Status:     StatusCompleted,
		Output:     []OutputItem{NewMessageItem("msg_"+uuid.NewString(), ItemCompleted, content)},
		OutputText: &content,
		Usage:      &usage,
	}
}

// NewReasoningResponse builds a completed response with a reasoning item
// followed by an assistant message. summary may be nil when no summary was
// requested.
func NewReasoningResponse(model, content string, summary *string, usage ResponsesUsage) *ResponsesResponse {
	reasoning := NewReasoningItem("rs_"+uuid.NewString(), ItemCompleted, summary)
	message := NewMessageItem("msg_"+uuid.NewString(), ItemCompleted, content)

	return &ResponsesResponse{
		ID:         "resp_" + uuid.NewString(),
		Object:     "response",
		CreatedAt:  time.Now().Unix(),
		Model:      model,
		Status:     StatusCompleted,
		Output:     []OutputItem{reasoning, message},
		OutputText: &content,
		Usage:      &usage,
	}
}

// OutputItem is one item of response output: an assistant message, a
// function call, or a reasoning block. Type selects which fields are
// meaningful; MarshalJSON emits only the fields of the active variant.
type OutputItem struct {
	// Type is "message", "function_call" or "reasoning".
	Type string `json:"type"`

	// ID identifies the item ("msg_<uuid>", "rs_<uuid>").
	ID string `json:"id"`

	// Status is the item lifecycle status.
	Status string `json:"status"`

	// Role is "assistant"; message items only.
	Role string `json:"role,omitempty"`

	// Content holds the message content parts; message items only.
	Content []OutputContentPart `json:"content,omitempty"`

	// Summary holds reasoning summary parts; reasoning items only. A nil
	// slice is serialized as an absent field.
	Summary []ReasoningSummary `json:"summary,omitempty"`

	// CallID, Name and Arguments describe a function call item.
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// NewMessageItem builds an assistant message output item. An in-progress
// item has an empty (but present) content array.
func NewMessageItem(id, status, text string) OutputItem {
	content := []OutputContentPart{}
	if status == ItemCompleted {
		content = append(content, OutputContentPart{Type: "output_text", Text: text})
	}
	return OutputItem{
		Type:    "message",
		ID:      id,
		Status:  status,
		Role:    "assistant",
		Content: content,
	}
}

// NewReasoningItem builds a reasoning output item. summary may be nil.
func NewReasoningItem(id, status string, summary *string) OutputItem {
	item := OutputItem{Type: "reasoning", ID: id, Status: status}
	if summary != nil {
		item.Summary = []ReasoningSummary{{Type: "summary_text", Text: *summary}}
	}
	return item
}

// MarshalJSON emits the variant-specific field set. Message items always
// carry a content array, even when empty; reasoning items omit an absent
// summary.
func (it OutputItem) MarshalJSON() ([]byte, error) {
	switch it.Type {
	case "message":
		content := it.Content
		if content == nil {
			content = []OutputContentPart{}
		}
		return json.Marshal(struct {
			Type    string              `json:"type"`
			ID      string              `json:"id"`
			Role    string              `json:"role"`
			Status  string              `json:"status"`
			Content []OutputContentPart `json:"content"`
		}{it.Type, it.ID, it.Role, it.Status, content})
	case "function_call":
		return json.Marshal(struct {
			Type      string `json:"type"`
			ID        string `json:"id"`
			CallID    string `json:"call_id"`
			Name      string `json:"name"`
			Arguments string `json:"arguments"`
			Status    string `json:"status"`
		}{it.Type, it.ID, it.CallID, it.Name, it.Arguments, it.Status})
	default: // reasoning
		return json.Marshal(struct {
			Type    string             `json:"type"`
			ID      string             `json:"id"`
			Status  string             `json:"status"`
			Summary []ReasoningSummary `json:"summary,omitempty"`
		}{it.Type, it.ID, it.Status, it.Summary})
	}
}

// OutputContentPart is one part of message output content.
type OutputContentPart struct {
	// Type is "output_text" or "refusal".
	Type string `json:"type"`

	// Text is the text for output_text parts.
	Text string `json:"text,omitempty"`

	// Refusal is the refusal message for refusal parts.
	Refusal string `json:"refusal,omitempty"`
}

// ReasoningSummary is one reasoning summary part.
type ReasoningSummary struct {
	// Type is always "summary_text".
	Type string `json:"type"`

	// Text is the summary text.
	Text string `json:"text"`
}

// ResponsesUsage is the token usage block for the Responses API.
type ResponsesUsage struct {
	// InputTokens is the number of input tokens.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of generated tokens.
	OutputTokens int `json:"output_tokens"`

	// TotalTokens includes input, output and reasoning tokens.
	TotalTokens int `json:"total_tokens"`

	// OutputTokensDetails breaks down the output tokens.
	OutputTokensDetails *OutputTokensDetails `json:"output_tokens_details,omitempty"`
}

// OutputTokensDetails details output token usage.
type OutputTokensDetails struct {
	// ReasoningTokens is the number of tokens spent on reasoning.
	ReasoningTokens int `json:"reasoning_tokens"`
}

// ResponsesError is the Responses API error shape.
type ResponsesError struct {
	// Type categorizes the error.
	Type string `json:"type"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty"`
}

// ResponsesErrorResponse wraps a ResponsesError for HTTP error bodies.
type ResponsesErrorResponse struct {
	Error ResponsesError `json:"error"`
}

// Streaming event payloads. Every event body carries its own "type" field
// matching the SSE event name.

// ResponseEvent is the payload of response.created, response.in_progress
// and response.completed events.
type ResponseEvent struct {
	Type     string             `json:"type"`
	Response *ResponsesResponse `json:"response"`
}

// OutputItemEvent is the payload of response.output_item.added/done.
type OutputItemEvent struct {
	Type        string     `json:"type"`
	OutputIndex int        `json:"output_index"`
	Item        OutputItem `json:"item"`
}

// ContentPartEvent is the payload of response.content_part.added/done.
type ContentPartEvent struct {
	Type         string            `json:"type"`
	OutputIndex  int               `json:"output_index"`
	ContentIndex int               `json:"content_index"`
	Part         OutputContentPart `json:"part"`
}

// TextDeltaEvent is the payload of response.output_text.delta.
type TextDeltaEvent struct {
	Type           string `json:"type"`
	OutputIndex    int    `json:"output_index"`
	ContentIndex   int    `json:"content_index"`
	Delta          string `json:"delta"`
	SequenceNumber int    `json:"sequence_number"`
}

// TextDoneEvent is the payload of response.output_text.done.
type TextDoneEvent struct {
	Type         string `json:"type"`
	OutputIndex  int    `json:"output_index"`
	ContentIndex int    `json:"content_index"`
	Text         string `json:"text"`
}

// SummaryPartEvent is the payload of response.reasoning_summary_part.added/done.
type SummaryPartEvent struct {
	Type         string           `json:"type"`
	OutputIndex  int              `json:"output_index"`
	SummaryIndex int              `json:"summary_index"`
	Part         ReasoningSummary `json:"part"`
}

// SummaryTextDeltaEvent is the payload of response.reasoning_summary_text.delta.
type SummaryTextDeltaEvent struct {
	Type           string `json:"type"`
	OutputIndex    int    `json:"output_index"`
	SummaryIndex   int    `json:"summary_index"`
	Delta          string `json:"delta"`
	SequenceNumber int    `json:"sequence_number"`
}

// SummaryTextDoneEvent is the payload of response.reasoning_summary_text.done.
type SummaryTextDoneEvent struct {
	Type         string `json:"type"`
	OutputIndex  int    `json:"output_index"`
	SummaryIndex int    `json:"summary_index"`
	Text         string `json:"text"`
}
