package handlers

import (
	"net/http"
	"time"

	"mercator-hq/llmsim/pkg/api/types"
	"mercator-hq/llmsim/pkg/config"
)

// ModelsHandler serves the model catalog listing.
type ModelsHandler struct {
	manager *config.Manager
}

// NewModelsHandler creates a models listing handler.
func NewModelsHandler(manager *config.Manager) *ModelsHandler {
	return &ModelsHandler{manager: manager}
}

// ServeHTTP implements http.Handler for GET /v1/models.
func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, types.ModelsResponse{
		Object: "list",
		Data:   h.list(),
	})
}

// list resolves the visible models: the configured subset, or the full
// built-in catalog. Configured models missing from the catalog are
// synthesized with an inferred owner.
func (h *ModelsHandler) list() []types.Model {
	available := h.manager.Current().Models.Available
	if len(available) == 0 {
		profiles := types.ListModelProfiles()
		models := make([]types.Model, 0, len(profiles))
		for _, p := range profiles {
			models = append(models, p.Model())
		}
		return models
	}

	models := make([]types.Model, 0, len(available))
	for _, id := range available {
		if p, ok := types.GetModelProfile(id); ok {
			models = append(models, p.Model())
			continue
		}
		models = append(models, types.Model{
			ID:      id,
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: types.InferModelOwner(id),
		})
	}
	return models
}

// ModelHandler serves a single model lookup.
type ModelHandler struct {
	manager *config.Manager
}

// NewModelHandler creates a model retrieval handler. It expects to be
// registered on a pattern with an {id} path segment.
func NewModelHandler(manager *config.Manager) *ModelHandler {
	return &ModelHandler{manager: manager}
}

// ServeHTTP implements http.Handler for GET /v1/models/{id}.
func (h *ModelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")

	available := h.manager.Current().Models.Available
	if len(available) > 0 && !containsModel(available, id) {
		writeError(w, http.StatusNotFound, types.NewNotFoundError(
			"The model '"+id+"' does not exist",
		))
		return
	}

	if p, ok := types.GetModelProfile(id); ok {
		writeJSON(w, http.StatusOK, p.Model())
		return
	}

	if containsModel(available, id) {
		writeJSON(w, http.StatusOK, types.Model{
			ID:      id,
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: types.InferModelOwner(id),
		})
		return
	}

	writeError(w, http.StatusNotFound, types.NewNotFoundError(
		"The model '"+id+"' does not exist",
	))
}

func containsModel(models []string, id string) bool {
	for _, m := range models {
		if m == id {
			return true
		}
	}
	return false
}
