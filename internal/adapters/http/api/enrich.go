// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/plazor/steampicker/internal/domain/model"
)

// EnrichDependencies defines the interface for metadata enrichment.
type EnrichDependencies interface {
	Enrich(ctx context.Context, appIDs []int) map[int]model.EnrichedMetadata
}

// EnrichHandler handles metadata enrichment requests.
type EnrichHandler struct {
	deps EnrichDependencies
}

// NewEnrichHandler creates a new enrichment handler.
func NewEnrichHandler(deps EnrichDependencies) *EnrichHandler {
	return &EnrichHandler{deps: deps}
}

// enrichRequest mirrors the POST /enrich body.
type enrichRequest struct {
	AppIDs []int `json:"appids"`
}

// HandlePostEnrich handles POST /enrich requests.
func (h *EnrichHandler) HandlePostEnrich(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_enrich"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.AppIDs) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingAppIDs))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Enrich(r.Context(), req.AppIDs))
}
