// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/plazor/steampicker/internal/domain/model"
)

// CatalogDependencies defines the interface for catalog sampling.
type CatalogDependencies interface {
	SampleCatalog(ctx context.Context, region string) ([]model.CandidateItem, error)
}

// CatalogHandler handles catalog sampling requests.
type CatalogHandler struct {
	deps   CatalogDependencies
	region func(explicit string, geoHints ...string) string
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies, region func(string, ...string) string) *CatalogHandler {
	return &CatalogHandler{deps: deps, region: region}
}

type catalogResponse struct {
	Region string                `json:"cc"`
	Count  int                   `json:"count"`
	Items  []model.CandidateItem `json:"items"`
}

// HandleGetCatalog handles GET /catalog?cc= requests.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_catalog"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	region := h.region(r.URL.Query().Get("cc"), geoHints(r)...)
	items, err := h.deps.SampleCatalog(r.Context(), region)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{Region: region, Count: len(items), Items: items})
}
