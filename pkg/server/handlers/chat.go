package handlers

import (
	"net/http"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/sim"
)

// ChatHandler serves the OpenAI-compatible chat completions endpoint.
type ChatHandler struct {
	sim *sim.Simulator
}

// NewChatHandler creates a chat completions handler.
func NewChatHandler(s *sim.Simulator) *ChatHandler {
	return &ChatHandler{sim: s}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.ChatCompletionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	result := h.sim.ChatCompletion(r.Context(), &req)
	if result == nil {
		// Client disconnected mid-simulation.
		return
	}

	switch {
	case result.Fault != nil:
		writeFault(w, result.Fault)
	case result.Stream != nil:
		streamSSE(w, r, result.Stream.Frames(r.Context()))
	default:
		writeJSON(w, http.StatusOK, result.Response)
	}
}
