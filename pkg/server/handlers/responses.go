package handlers

import (
	"net/http"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/sim"
)

// ResponsesHandler serves the OpenAI-compatible Responses API endpoint.
type ResponsesHandler struct {
	sim *sim.Simulator
}

// NewResponsesHandler creates a Responses API handler.
func NewResponsesHandler(s *sim.Simulator) *ResponsesHandler {
	return &ResponsesHandler{sim: s}
}

// ServeHTTP implements http.Handler.
func (h *ResponsesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.ResponsesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	result := h.sim.Responses(r.Context(), &req)
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
