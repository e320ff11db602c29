// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/plazor/steampicker/internal/domain/model"
	"github.com/plazor/steampicker/internal/domain/valuation"
)

// ValueDependencies defines the interface for library valuation.
type ValueDependencies interface {
	EstimateValue(ctx context.Context, steamID, region string) (model.ProfileSnapshot, valuation.Result)
}

// ValueHandler handles library valuation requests.
type ValueHandler struct {
	deps   ValueDependencies
	region func(explicit string, geoHints ...string) string
}

// NewValueHandler creates a new valuation handler.
func NewValueHandler(deps ValueDependencies, region func(string, ...string) string) *ValueHandler {
	return &ValueHandler{deps: deps, region: region}
}

// valueResponse pairs the snapshot the valuation ran against with the
// valuation itself.
type valueResponse struct {
	Snapshot  model.ProfileSnapshot `json:"snapshot"`
	Valuation valuation.Result      `json:"valuation"`
}

// HandleGetValue handles GET /value/{steam_id}?cc= requests.
func (h *ValueHandler) HandleGetValue(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_value"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	steamID, ok := steamIDFromPath(r.URL.Path, "/value/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrInvalidSteamID))
		return
	}
	region := h.region(r.URL.Query().Get("cc"), geoHints(r)...)
	snap, result := h.deps.EstimateValue(r.Context(), steamID, region)
	writeJSON(w, http.StatusOK, valueResponse{Snapshot: snap, Valuation: result})
}
