// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/plazor/steampicker/internal/adapters/steam/webapi"
)

// ResolveDependencies defines the interface for identity resolution.
type ResolveDependencies interface {
	ResolveIdentity(ctx context.Context, input string) (string, error)
}

// ResolveHandler handles identity resolution requests.
type ResolveHandler struct {
	deps ResolveDependencies
}

// NewResolveHandler creates a new identity resolution handler.
func NewResolveHandler(deps ResolveDependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// resolveRequest mirrors the POST /resolve body. Input accepts a
// profile URL, a vanity alias, or a bare 17-digit id.
type resolveRequest struct {
	Input string `json:"input"`
}

type resolveResponse struct {
	SteamID string `json:"steamId"`
}

// HandlePostResolve handles POST /resolve requests.
func (h *ResolveHandler) HandlePostResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_resolve"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingInput))
		return
	}
	id, err := h.deps.ResolveIdentity(r.Context(), req.Input)
	if err != nil {
		if errors.Is(err, webapi.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{SteamID: id})
}
