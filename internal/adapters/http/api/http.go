// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProfileDependencies
	ValueDependencies
	CatalogDependencies
	EnrichDependencies
	RecommendDependencies
	ResolveDependencies
	SaleDependencies
	StatsProvider

	// Region resolves the effective region code from an explicit value
	// and geolocation hints.
	Region(explicit string, geoHints ...string) string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	profileHandler   *ProfileHandler
	valueHandler     *ValueHandler
	catalogHandler   *CatalogHandler
	enrichHandler    *EnrichHandler
	recommendHandler *RecommendHandler
	resolveHandler   *ResolveHandler
	saleHandler      *SaleHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		profileHandler:   NewProfileHandler(deps),
		valueHandler:     NewValueHandler(deps, deps.Region),
		catalogHandler:   NewCatalogHandler(deps, deps.Region),
		enrichHandler:    NewEnrichHandler(deps),
		recommendHandler: NewRecommendHandler(deps, deps.Region),
		resolveHandler:   NewResolveHandler(deps),
		saleHandler:      NewSaleHandler(deps, deps.Region),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profile/", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	mux.HandleFunc("/value/", MetricsMiddleware(s.valueHandler.HandleGetValue, "value"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))
	mux.HandleFunc("/enrich", MetricsMiddleware(s.enrichHandler.HandlePostEnrich, "enrich"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandlePostRecommend, "recommend"))
	mux.HandleFunc("/resolve", MetricsMiddleware(s.resolveHandler.HandlePostResolve, "resolve"))
	mux.HandleFunc("/sale", MetricsMiddleware(s.saleHandler.HandleGetSale, "sale"))
}

// geoHints extracts country hints set by common edge proxies, in
// precedence order.
func geoHints(r *http.Request) []string {
	return []string{
		r.Header.Get("x-vercel-ip-country"),
		r.Header.Get("x-forwarded-country"),
		r.Header.Get("cf-ipcountry"),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
