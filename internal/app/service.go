// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/plazor/steampicker/internal/adapters/steam/store"
	"github.com/plazor/steampicker/internal/adapters/steam/webapi"
	"github.com/plazor/steampicker/internal/domain/catalog"
	"github.com/plazor/steampicker/internal/domain/fetchpool"
	"github.com/plazor/steampicker/internal/domain/model"
	"github.com/plazor/steampicker/internal/domain/sale"
	"github.com/plazor/steampicker/internal/domain/scoring"
	"github.com/plazor/steampicker/internal/domain/taste"
	"github.com/plazor/steampicker/internal/domain/valuation"
	"github.com/plazor/steampicker/pkg/logger"
	"github.com/plazor/steampicker/pkg/metrics"
)

// Default fan-out and output bounds.
const (
	defaultEnrichConcurrency = 6
	profileFetchConcurrency  = 3
	topGamesLimit            = 10
	recentGamesLimit         = 10
)

// Service implements the API dependencies for the picker system.
type Service struct {
	mu sync.RWMutex

	// Upstream clients
	players    *webapi.Client
	storefront *store.Client

	// Configuration
	apiKey               string
	webAPIBaseURL        string
	storeBaseURL         string
	defaultRegion        string
	valuationConcurrency int
	enrichConcurrency    int
	maxCandidates        int
	recommendLimit       int
	upstreamTimeout      time.Duration

	// Optional second-stage reranker; resolves to nil until a model
	// is registered.
	reranker *scoring.RerankerHandle

	now func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSteamAPIKey sets the key used for player data requests.
func WithSteamAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithWebAPIBaseURL overrides the player data endpoint.
func WithWebAPIBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.webAPIBaseURL = u
		}
	}
}

// WithStoreBaseURL overrides the storefront endpoint.
func WithStoreBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.storeBaseURL = u
		}
	}
}

// WithDefaultRegion sets the region used when a request carries none.
func WithDefaultRegion(cc string) Option {
	return func(s *Service) {
		if cc != "" {
			s.defaultRegion = cc
		}
	}
}

// WithValuationConcurrency bounds the price lookup fan-out.
func WithValuationConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.valuationConcurrency = n
		}
	}
}

// WithEnrichConcurrency bounds the metadata lookup fan-out.
func WithEnrichConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.enrichConcurrency = n
		}
	}
}

// WithMaxCandidates caps the catalog sample size.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithRecommendLimit caps the ranked recommendation list.
func WithRecommendLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recommendLimit = n
		}
	}
}

// WithUpstreamTimeout sets the per-request timeout for both upstreams.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.upstreamTimeout = d
		}
	}
}

// WithReranker registers an optional second-stage reranker handle.
func WithReranker(h *scoring.RerankerHandle) Option {
	return func(s *Service) {
		s.reranker = h
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Used in tests for deterministic
// release-age and sale-window decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultRegion:        valuation.DefaultRegion,
		valuationConcurrency: valuation.Concurrency,
		enrichConcurrency:    defaultEnrichConcurrency,
		maxCandidates:        catalog.MaxCandidates,
		recommendLimit:       scoring.DefaultTopN,
		now:                  time.Now,
		logger:               nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the upstream clients.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting picker service...")

	httpClient := webapi.NewHTTPClient(s.upstreamTimeout)
	s.players = webapi.NewClient(webapi.Config{
		BaseURL:    s.webAPIBaseURL,
		APIKey:     s.apiKey,
		HTTPClient: httpClient,
	})
	s.storefront = store.NewClient(store.Config{
		BaseURL:    s.storeBaseURL,
		HTTPClient: httpClient,
	})

	s.started = true
	s.logger.Info(ctx, "picker service started",
		logger.String("defaultRegion", s.defaultRegion),
		logger.Int("valuationConcurrency", s.valuationConcurrency),
		logger.Int("enrichConcurrency", s.enrichConcurrency),
		logger.Int("maxCandidates", s.maxCandidates),
		logger.Int("recommendLimit", s.recommendLimit),
	)

	return nil
}

// Stop marks the service stopped. Upstream clients hold no connections
// beyond the shared HTTP transport, so there is nothing to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "picker service stopped")
}

// Region resolves the effective region code for a request: explicit
// value first, then geolocation hints, then the configured default.
func (s *Service) Region(explicit string, geoHints ...string) string {
	return valuation.ResolveRegion(explicit, s.defaultRegion, geoHints...)
}

// profilePayload carries one of the three concurrent profile fetches.
type profilePayload struct {
	profile *model.PlayerProfile
	owned   []model.LibraryEntry
	total   *int
	recent  []model.LibraryEntry
}

// AggregateProfile fetches summary, owned games, and recent games
// concurrently and folds them into one snapshot. Individual fetch
// failures degrade the snapshot instead of failing it, so a snapshot is
// always returned for a well-formed id.
func (s *Service) AggregateProfile(ctx context.Context, steamID string) model.ProfileSnapshot {
	start := time.Now()
	defer func() {
		metrics.RecordPipelineStageDuration("aggregate", float64(time.Since(start).Milliseconds()))
	}()

	kinds := []string{"summary", "owned", "recent"}
	outs := fetchpool.Map(ctx, kinds, profileFetchConcurrency, func(ctx context.Context, kind string) (profilePayload, error) {
		metrics.RecordUpstreamFetch("webapi")
		switch kind {
		case "summary":
			p, err := s.players.PlayerSummary(ctx, steamID)
			return profilePayload{profile: p}, err
		case "owned":
			games, total, err := s.players.OwnedGames(ctx, steamID)
			return profilePayload{owned: games, total: total}, err
		default:
			games, err := s.players.RecentlyPlayed(ctx, steamID)
			return profilePayload{recent: games}, err
		}
	})

	var merged profilePayload
	for i, out := range outs {
		if out.Miss() {
			metrics.RecordUpstreamMiss("webapi")
			s.logger.Warn(ctx, "profile fetch degraded",
				logger.String("fetch", kinds[i]),
				logger.String("steamID", steamID),
				logger.Error(out.Err),
			)
			continue
		}
		switch kinds[i] {
		case "summary":
			merged.profile = out.Value.profile
		case "owned":
			merged.owned = out.Value.owned
			merged.total = out.Value.total
		default:
			merged.recent = out.Value.recent
		}
	}

	return model.ProfileSnapshot{
		SteamID:   steamID,
		IsPrivate: isPrivate(merged),
		Profile:   merged.profile,
		Library:   buildLibrary(merged),
		FetchedAt: s.now().UTC(),
	}
}

// isPrivate holds when the summary is gone entirely, or when the owned
// list is empty while the upstream explicitly reported a zero total.
func isPrivate(p profilePayload) bool {
	if p.profile == nil {
		return true
	}
	return len(p.owned) == 0 && p.total != nil && *p.total == 0
}

func buildLibrary(p profilePayload) model.Library {
	lib := model.Library{
		TotalGames:  p.total,
		TopGames:    []model.LibraryEntry{},
		RecentGames: []model.LibraryEntry{},
		OwnedGames:  make([]model.OwnedRef, 0, len(p.owned)),
		AllGames:    p.owned,
	}
	if lib.AllGames == nil {
		lib.AllGames = []model.LibraryEntry{}
	}

	for _, g := range p.owned {
		lib.TotalMinutes += g.Minutes
		if g.Minutes == 0 {
			lib.NeverPlayed++
		}
		lib.OwnedGames = append(lib.OwnedGames, model.OwnedRef{AppID: g.AppID})
	}

	top := make([]model.LibraryEntry, len(p.owned))
	copy(top, p.owned)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Minutes > top[j].Minutes
	})
	if len(top) > topGamesLimit {
		top = top[:topGamesLimit]
	}
	lib.TopGames = top

	recent := p.recent
	if len(recent) > recentGamesLimit {
		recent = recent[:recentGamesLimit]
	}
	if recent == nil {
		recent = []model.LibraryEntry{}
	}
	lib.RecentGames = recent

	return lib
}

// EstimateValue aggregates the profile and prices every owned item in
// the given region. An empty or private library short-circuits to a
// zero valuation without issuing a single price lookup.
func (s *Service) EstimateValue(ctx context.Context, steamID, region string) (model.ProfileSnapshot, valuation.Result) {
	snap := s.AggregateProfile(ctx, steamID)

	if len(snap.Library.AllGames) == 0 {
		return snap, valuation.Tally(region, nil)
	}

	start := time.Now()
	outsCh := fetchpool.Start(ctx, snap.Library.AllGames, s.valuationConcurrency, func(ctx context.Context, g model.LibraryEntry) (*valuation.PriceQuote, error) {
		metrics.RecordUpstreamFetch("store")
		return s.storefront.PriceOverview(ctx, g.AppID, region)
	})

	// A canceled caller stops waiting here; pricing already in flight
	// finishes in the background and every item counts as missed.
	var outs []fetchpool.Outcome[*valuation.PriceQuote]
	select {
	case outs = <-outsCh:
	case <-ctx.Done():
		metrics.RecordPipelineStageDuration("valuation", float64(time.Since(start).Milliseconds()))
		return snap, valuation.Tally(region, make([]*valuation.PriceQuote, len(snap.Library.AllGames)))
	}
	metrics.RecordPipelineStageDuration("valuation", float64(time.Since(start).Milliseconds()))

	quotes := make([]*valuation.PriceQuote, len(outs))
	for i, out := range outs {
		if out.Miss() {
			metrics.RecordUpstreamMiss("store")
			continue
		}
		quotes[i] = out.Value
	}

	return snap, valuation.Tally(region, quotes)
}

// SampleCatalog pulls the promoted storefront buckets for a region and
// flattens them into a deduplicated candidate list.
func (s *Service) SampleCatalog(ctx context.Context, region string) ([]model.CandidateItem, error) {
	metrics.RecordUpstreamFetch("store")
	buckets, err := s.storefront.FeaturedBuckets(ctx, region)
	if err != nil {
		metrics.RecordUpstreamMiss("store")
		metrics.RecordErrorByComponent("catalog", "upstream")
		return nil, fmt.Errorf("sampling catalog: %w", err)
	}

	items := catalog.Sample(buckets, s.maxCandidates)
	metrics.UpdateCandidatesSampled(len(items))
	return items, nil
}

// Enrich fetches descriptive metadata for the given app ids. The result
// is total: every requested id maps to a record, with a zero record
// standing in for any per-item failure. Duplicate ids are fetched once.
func (s *Service) Enrich(ctx context.Context, appIDs []int) map[int]model.EnrichedMetadata {
	unique := dedupeIDs(appIDs)
	start := time.Now()
	outs := fetchpool.Map(ctx, unique, s.enrichConcurrency, func(ctx context.Context, id int) (model.EnrichedMetadata, error) {
		metrics.RecordUpstreamFetch("store")
		return s.storefront.AppDetails(ctx, id)
	})
	metrics.RecordPipelineStageDuration("enrich", float64(time.Since(start).Milliseconds()))

	enriched := make(map[int]model.EnrichedMetadata, len(unique))
	for i, out := range outs {
		if out.Miss() {
			metrics.RecordUpstreamMiss("store")
			enriched[unique[i]] = model.ZeroEnriched()
			continue
		}
		enriched[unique[i]] = out.Value
	}
	return enriched
}

func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// Recommend runs the full pipeline: profile aggregation and catalog
// sampling in parallel, owned-title exclusion, enrichment over the
// union of library and candidate ids, taste inference, and scoring.
// When the scored list comes back empty the discount-ordered fallback
// takes its place so the response is never empty while candidates
// exist.
func (s *Service) Recommend(ctx context.Context, steamID, region string, limit int) (model.Recommendation, error) {
	if limit <= 0 {
		limit = s.recommendLimit
	}

	var (
		snap       model.ProfileSnapshot
		sampled    []model.CandidateItem
		catalogErr error
	)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		snap = s.AggregateProfile(ctx, steamID)
	}()
	go func() {
		defer wg.Done()
		sampled, catalogErr = s.SampleCatalog(ctx, region)
	}()
	wg.Wait()
	if catalogErr != nil {
		return model.Recommendation{}, catalogErr
	}

	owned := snap.Library.OwnedSet()
	candidates := make([]model.CandidateItem, 0, len(sampled))
	for _, c := range sampled {
		if _, has := owned[c.AppID]; has {
			continue
		}
		candidates = append(candidates, c)
	}

	ids := make([]int, 0, len(candidates)+len(snap.Library.AllGames))
	for _, c := range candidates {
		ids = append(ids, c.AppID)
	}
	for _, g := range snap.Library.AllGames {
		ids = append(ids, g.AppID)
	}
	enriched := s.Enrich(ctx, ids)

	prefs := taste.Infer(snap.Library.AllGames, enriched)

	inputs := joinPlaytime(candidates, snap.Library)
	items, fellBack := s.rankOrFallback(ctx, inputs, candidates, enriched, prefs, limit)
	return model.Recommendation{
		SteamID:  steamID,
		Region:   region,
		Taste:    prefs,
		Fallback: fellBack,
		Items:    items,
	}, nil
}

// joinPlaytime pairs each candidate with the user's playtime signal for
// it. Lifetime minutes come from the owned library, two-week minutes
// from the recently-played list; the latter also covers titles played
// but not owned, such as family-shared games.
func joinPlaytime(candidates []model.CandidateItem, lib model.Library) []scoring.Input {
	lifetime := make(map[int]int, len(lib.AllGames))
	for _, g := range lib.AllGames {
		lifetime[g.AppID] = g.Minutes
	}
	recent := make(map[int]int, len(lib.RecentGames))
	for _, g := range lib.RecentGames {
		recent[g.AppID] = g.Minutes2W
		if _, owned := lifetime[g.AppID]; !owned {
			lifetime[g.AppID] = g.Minutes
		}
	}

	inputs := make([]scoring.Input, len(candidates))
	for i, c := range candidates {
		inputs[i] = scoring.Input{
			Item:      c,
			Minutes:   lifetime[c.AppID],
			Minutes2W: recent[c.AppID],
		}
	}
	return inputs
}

// rankOrFallback scores the candidates and substitutes the
// discount-ordered list when scoring survives nothing or panics.
func (s *Service) rankOrFallback(ctx context.Context, inputs []scoring.Input, candidates []model.CandidateItem, enriched map[int]model.EnrichedMetadata, prefs model.TasteProfile, limit int) (items []model.ScoredCandidate, fellBack bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "scoring failed, serving fallback order",
				logger.Any("panic", r),
			)
			metrics.RecordErrorByComponent("scoring", "panic")
			items = scoring.Fallback(candidates, limit)
			fellBack = true
			metrics.RecordRecommendFallback()
		}
	}()

	start := time.Now()
	ranked := scoring.Rank(inputs, enriched, prefs, s.now().Year(), limit)
	metrics.RecordPipelineStageDuration("scoring", float64(time.Since(start).Milliseconds()))

	if len(ranked) == 0 && len(candidates) > 0 {
		metrics.RecordRecommendFallback()
		return scoring.Fallback(candidates, limit), true
	}

	if r, err := s.resolveReranker(); err == nil && r != nil {
		if reranked, rerr := r.Rerank(ctx, ranked); rerr == nil {
			ranked = reranked
		} else {
			s.logger.Warn(ctx, "reranker failed, keeping base order", logger.Error(rerr))
		}
	}

	return ranked, false
}

func (s *Service) resolveReranker() (scoring.Reranker, error) {
	if s.reranker == nil {
		return nil, nil
	}
	return s.reranker.Get()
}

// ResolveIdentity turns a profile URL, vanity alias, or bare id into a
// canonical 17-digit id.
func (s *Service) ResolveIdentity(ctx context.Context, input string) (string, error) {
	metrics.RecordUpstreamFetch("webapi")
	id, err := s.players.Resolve(ctx, input)
	if err != nil {
		metrics.RecordUpstreamMiss("webapi")
		return "", err
	}
	return id, nil
}

// SaleMeta reports the current position in the seasonal sale calendar
// together with the live count of discounted items. A failed count
// degrades to a nil count rather than failing the report.
func (s *Service) SaleMeta(ctx context.Context, region string) sale.Report {
	now := s.now()
	report := sale.Report{Info: sale.ActiveOrNext(now), Now: now.UTC()}

	metrics.RecordUpstreamFetch("store")
	total, err := s.storefront.SpecialsTotal(ctx, region)
	if err != nil {
		metrics.RecordUpstreamMiss("store")
		s.logger.Warn(ctx, "specials count unavailable", logger.Error(err))
		return report
	}
	report.GamesOnSale = &total
	return report
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":              s.started,
		"defaultRegion":        s.defaultRegion,
		"valuationConcurrency": s.valuationConcurrency,
		"enrichConcurrency":    s.enrichConcurrency,
		"maxCandidates":        s.maxCandidates,
		"recommendLimit":       s.recommendLimit,
	}
}
