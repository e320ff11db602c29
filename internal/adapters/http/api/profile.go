// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/plazor/steampicker/internal/adapters/steam/webapi"
	"github.com/plazor/steampicker/internal/domain/model"
)

// ProfileDependencies defines the interface for profile aggregation.
type ProfileDependencies interface {
	AggregateProfile(ctx context.Context, steamID string) model.ProfileSnapshot
}

// ProfileHandler handles profile snapshot requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /profile/{steam_id} requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_profile"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	steamID, ok := steamIDFromPath(r.URL.Path, "/profile/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrInvalidSteamID))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.AggregateProfile(r.Context(), steamID))
}

// steamIDFromPath extracts and validates the path parameter after prefix.
func steamIDFromPath(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") || !webapi.IsSteamID(id) {
		return "", false
	}
	return id, true
}
