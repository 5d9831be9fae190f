package types

import (
	"sort"
	"strings"
)

// Model is the basic model object returned by the models listing endpoint.
type Model struct {
	// ID is the model identifier.
	ID string `json:"id"`

	// Object is always "model".
	Object string `json:"object"`

	// Created is the Unix timestamp of the model release.
	Created int64 `json:"created"`

	// OwnedBy is the owning organization.
	OwnedBy string `json:"owned_by"`
}

// ModelsResponse is the models listing response.
type ModelsResponse struct {
	// Object is always "list".
	Object string `json:"object"`

	// Data is the list of models.
	Data []Model `json:"data"`
}

// ModelCapabilities describes what a model supports.
type ModelCapabilities struct {
	// FunctionCalling indicates function/tool calling support.
	FunctionCalling bool `json:"function_calling"`

	// Vision indicates image input support.
	Vision bool `json:"vision"`

	// JSONMode indicates JSON mode / structured output support.
	JSONMode bool `json:"json_mode"`

	// Reasoning indicates extended reasoning capabilities.
	Reasoning bool `json:"reasoning"`
}

// ModelProfile is a catalog entry with realistic model specifications,
// sourced from models.dev.
type ModelProfile struct {
	// ID is the model identifier (e.g., "gpt-5").
	ID string `json:"id"`

	// Name is the human-readable model name.
	Name string `json:"name"`

	// OwnedBy is the owning organization.
	OwnedBy string `json:"owned_by"`

	// ContextWindow is the maximum context size in tokens.
	ContextWindow int `json:"context_window"`

	// MaxOutputTokens is the maximum output per request.
	MaxOutputTokens int `json:"max_output_tokens"`

	// Created is the Unix timestamp of the model release.
	Created int64 `json:"created"`

	// Capabilities lists what the model supports.
	Capabilities ModelCapabilities `json:"capabilities"`

	// KnowledgeCutoff is the training cutoff (YYYY-MM-DD), if known.
	KnowledgeCutoff string `json:"knowledge_cutoff,omitempty"`
}

// Model converts the profile to the basic listing shape.
func (p *ModelProfile) Model() Model {
	return Model{ID: p.ID, Object: "model", Created: p.Created, OwnedBy: p.OwnedBy}
}

var (
	gpt5Caps = ModelCapabilities{FunctionCalling: true, Vision: true, JSONMode: true, Reasoning: true}
	gpt4oCaps = ModelCapabilities{FunctionCalling: true, Vision: true, JSONMode: true}
	gpt4Caps  = ModelCapabilities{FunctionCalling: true, JSONMode: true}
	oCaps     = ModelCapabilities{FunctionCalling: true, Vision: true, JSONMode: true, Reasoning: true}
	claudeCaps = ModelCapabilities{FunctionCalling: true, Vision: true, JSONMode: true}
)

// modelRegistry is the static catalog of known models.
var modelRegistry = buildModelRegistry()

func buildModelRegistry() map[string]ModelProfile {
	profiles := []ModelProfile{
		// GPT-5 family, 400K context window.
		{ID: "gpt-5", Name: "GPT-5", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1754524800, Capabilities: gpt5Caps, KnowledgeCutoff: "2024-09-30"},
		{ID: "gpt-5-mini", Name: "GPT-5 Mini", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1754524800, Capabilities: gpt5Caps, KnowledgeCutoff: "2024-05-30"},
		{ID: "gpt-5-nano", Name: "GPT-5 Nano", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1754524800, Capabilities: gpt5Caps, KnowledgeCutoff: "2024-05-30"},
		{ID: "gpt-5-codex", Name: "GPT-5 Codex", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1754524800, Capabilities: gpt5Caps, KnowledgeCutoff: "2024-09-30"},
		{ID: "gpt-5.1", Name: "GPT-5.1", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1762387200, Capabilities: gpt5Caps, KnowledgeCutoff: "2025-03-31"},
		{ID: "gpt-5.1-codex", Name: "GPT-5.1 Codex", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1762387200, Capabilities: gpt5Caps, KnowledgeCutoff: "2025-03-31"},
		{ID: "gpt-5.1-codex-mini", Name: "GPT-5.1 Codex Mini", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1762387200, Capabilities: gpt5Caps, KnowledgeCutoff: "2025-03-31"},
		{ID: "gpt-5.1-codex-max", Name: "GPT-5.1 Codex Max", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1762387200, Capabilities: gpt5Caps, KnowledgeCutoff: "2025-03-31"},
		{ID: "gpt-5.2", Name: "GPT-5.2", OwnedBy: "openai", ContextWindow: 400_000, MaxOutputTokens: 128_000, Created: 1765411200, Capabilities: gpt5Caps, KnowledgeCutoff: "2025-08-31"},

		// O-series reasoning models.
		{ID: "o3", Name: "O3", OwnedBy: "openai", ContextWindow: 200_000, MaxOutputTokens: 100_000, Created: 1765411200, Capabilities: oCaps, KnowledgeCutoff: "2024-12-31"},
		{ID: "o3-mini", Name: "O3 Mini", OwnedBy: "openai", ContextWindow: 200_000, MaxOutputTokens: 100_000, Created: 1765411200, Capabilities: oCaps, KnowledgeCutoff: "2024-12-31"},
		{ID: "o4-mini", Name: "O4 Mini", OwnedBy: "openai", ContextWindow: 200_000, MaxOutputTokens: 100_000, Created: 1768003200, Capabilities: oCaps, KnowledgeCutoff: "2025-06-30"},

		// GPT-4 family.
		{ID: "gpt-4o", Name: "GPT-4o", OwnedBy: "openai", ContextWindow: 128_000, MaxOutputTokens: 16_384, Created: 1715558400, Capabilities: gpt4oCaps, KnowledgeCutoff: "2023-10-01"},
		{ID: "gpt-4o-mini", Name: "GPT-4o Mini", OwnedBy: "openai", ContextWindow: 128_000, MaxOutputTokens: 16_384, Created: 1721692800, Capabilities: gpt4oCaps, KnowledgeCutoff: "2023-10-01"},
		{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", OwnedBy: "openai", ContextWindow: 128_000, MaxOutputTokens: 4_096, Created: 1712620800, Capabilities: gpt4Caps, KnowledgeCutoff: "2023-12-01"},
		{ID: "gpt-4", Name: "GPT-4", OwnedBy: "openai", ContextWindow: 8_192, MaxOutputTokens: 8_192, Created: 1678838400, Capabilities: gpt4Caps, KnowledgeCutoff: "2023-04-01"},
		{ID: "gpt-4.1", Name: "GPT-4.1", OwnedBy: "openai", ContextWindow: 1_047_576, MaxOutputTokens: 32_768, Created: 1744675200, Capabilities: gpt4oCaps, KnowledgeCutoff: "2024-06-01"},

		// Claude family.
		{ID: "claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 8_192, Created: 1718841600, Capabilities: claudeCaps, KnowledgeCutoff: "2024-04-01"},
		{ID: "claude-3.7-sonnet", Name: "Claude 3.7 Sonnet", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1740355200, Capabilities: ModelCapabilities{FunctionCalling: true, Vision: true, JSONMode: true, Reasoning: true}, KnowledgeCutoff: "2024-11-01"},
		{ID: "claude-sonnet-4", Name: "Claude Sonnet 4", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1747958400, Capabilities: claudeCaps, KnowledgeCutoff: "2025-03-01"},
		{ID: "claude-sonnet-4.5", Name: "Claude Sonnet 4.5", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1756684800, Capabilities: claudeCaps, KnowledgeCutoff: "2025-05-01"},
		{ID: "claude-opus-4", Name: "Claude Opus 4", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1747958400, Capabilities: claudeCaps, KnowledgeCutoff: "2025-03-01"},
		{ID: "claude-opus-4.5", Name: "Claude Opus 4.5", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1756684800, Capabilities: claudeCaps, KnowledgeCutoff: "2025-05-01"},
		{ID: "claude-haiku-4.5", Name: "Claude Haiku 4.5", OwnedBy: "anthropic", ContextWindow: 200_000, MaxOutputTokens: 64_000, Created: 1756684800, Capabilities: claudeCaps, KnowledgeCutoff: "2025-05-01"},
	}

	registry := make(map[string]ModelProfile, len(profiles))
	for _, p := range profiles {
		registry[p.ID] = p
	}
	return registry
}

// ListModelProfiles returns all catalog entries sorted by ID.
func ListModelProfiles() []ModelProfile {
	profiles := make([]ModelProfile, 0, len(modelRegistry))
	for _, p := range modelRegistry {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles
}

// GetModelProfile returns the catalog entry for a model ID.
func GetModelProfile(id string) (ModelProfile, bool) {
	p, ok := modelRegistry[id]
	return p, ok
}

// InferModelOwner determines the owning organization for a model ID,
// falling back to name patterns for models not in the catalog.
func InferModelOwner(id string) string {
	if p, ok := modelRegistry[id]; ok {
		return p.OwnedBy
	}

	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "gpt"),
		strings.HasPrefix(lower, "o3"),
		strings.HasPrefix(lower, "o4"):
		return "openai"
	case strings.Contains(lower, "claude"):
		return "anthropic"
	case strings.Contains(lower, "gemini"):
		return "google"
	default:
		return "llmsim"
	}
}
