// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/plazor/steampicker/internal/adapters/steam/webapi"
	"github.com/plazor/steampicker/internal/domain/model"
)

// RecommendDependencies defines the interface for recommendation runs.
type RecommendDependencies interface {
	Recommend(ctx context.Context, steamID, region string, limit int) (model.Recommendation, error)
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps   RecommendDependencies
	region func(explicit string, geoHints ...string) string
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies, region func(string, ...string) string) *RecommendHandler {
	return &RecommendHandler{deps: deps, region: region}
}

// recommendRequest mirrors the POST /recommend body.
type recommendRequest struct {
	SteamID string `json:"steamId"`
	Region  string `json:"cc"`
	Limit   int    `json:"limit"`
}

func (req recommendRequest) validate() error {
	if strings.TrimSpace(req.SteamID) == "" {
		return ErrMissingInput
	}
	if !webapi.IsSteamID(req.SteamID) {
		return ErrInvalidSteamID
	}
	return nil
}

// HandlePostRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandlePostRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
		return
	}
	region := h.region(req.Region, geoHints(r)...)
	rec, err := h.deps.Recommend(r.Context(), req.SteamID, region, req.Limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
