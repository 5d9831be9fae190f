package handlers

import (
	"net/http"

	"mercator-hq/llmsim/pkg/stats"
)

// StatsHandler serves the runtime statistics snapshot.
type StatsHandler struct {
	stats *stats.Stats
}

// NewStatsHandler creates a statistics handler.
func NewStatsHandler(st *stats.Stats) *StatsHandler {
	return &StatsHandler{stats: st}
}

// ServeHTTP implements http.Handler for GET /llmsim/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}
