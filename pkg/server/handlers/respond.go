package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/faults"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to encode response", "error", err)
	}
}

// writeError writes an OpenAI-style error envelope.
func writeError(w http.ResponseWriter, status int, errResp *types.ErrorResponse) {
	writeJSON(w, status, errResp)
}

// writeValidationError renders a request validation failure as a 400,
// naming the offending parameter when the error carries one.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, types.NewInvalidRequestError(
			verr.Message, verr.Field, types.CodeMissingField,
		))
		return
	}
	writeError(w, http.StatusBadRequest, types.NewInvalidRequestError(err.Error(), "", ""))
}

// writeFault renders an injected fault as its error envelope, including a
// Retry-After header when the fault carries one.
func writeFault(w http.ResponseWriter, fault *faults.Fault) {
	if fault.RetryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(fault.RetryAfterSeconds))
	}
	writeError(w, fault.Status, types.NewErrorResponse(
		fault.Message(), fault.ErrorType(), "", fault.Code(),
	))
}

// streamSSE drains a frame channel into the response as Server-Sent Events,
// flushing after every frame. It returns when the channel closes or the
// client disconnects.
func streamSSE(w http.ResponseWriter, r *http.Request, frames <-chan string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, types.NewErrorResponse(
			"Streaming is not supported by this connection.",
			types.ErrorTypeServerError, "", "",
		))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for frame := range frames {
		if _, err := w.Write([]byte(frame)); err != nil {
			// Client went away; the engine stops via the request context.
			return
		}
		flusher.Flush()
	}
}

// decodeJSON decodes a request body, rendering a 400 on malformed JSON.
// Returns false when an error response has been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, types.NewInvalidRequestError(
			"The request body is not valid JSON: "+err.Error(),
			"", types.CodeInvalidJSON,
		))
		return false
	}
	return true
}
