// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/plazor/steampicker/internal/domain/sale"
)

// SaleDependencies defines the interface for sale calendar reports.
type SaleDependencies interface {
	SaleMeta(ctx context.Context, region string) sale.Report
}

// SaleHandler handles sale calendar requests.
type SaleHandler struct {
	deps   SaleDependencies
	region func(explicit string, geoHints ...string) string
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(deps SaleDependencies, region func(string, ...string) string) *SaleHandler {
	return &SaleHandler{deps: deps, region: region}
}

// HandleGetSale handles GET /sale?cc= requests.
func (h *SaleHandler) HandleGetSale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	region := h.region(r.URL.Query().Get("cc"), geoHints(r)...)
	writeJSON(w, http.StatusOK, h.deps.SaleMeta(r.Context(), region))
}
