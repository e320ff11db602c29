package scoring

import (
	"context"
	"sync"

	"github.com/plazor/steampicker/internal/domain/model"
)

// Reranker re-orders the head of a ranked list using an external model.
// No implementation ships with the core; the heuristic ranker's output is
// served as-is until one is plugged in.
type Reranker interface {
	Rerank(ctx context.Context, scored []model.ScoredCandidate) ([]model.ScoredCandidate, error)
}

// RerankerHandle owns a lazily initialized Reranker so the model is only
// loaded on first use and never lives as ambient global state.
type RerankerHandle struct {
	mu   sync.Mutex
	init func() (Reranker, error)
	r    Reranker
	err  error
	done bool
}

// NewRerankerHandle wraps an initializer. A nil initializer yields a
// handle that never resolves a model.
func NewRerankerHandle(init func() (Reranker, error)) *RerankerHandle {
	return &RerankerHandle{init: init}
}

// Get resolves the Reranker, running the initializer at most once.
// It returns nil when no initializer was provided.
func (h *RerankerHandle) Get() (Reranker, error) {
	if h == nil {
		return nil, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done || h.init == nil {
		return h.r, h.err
	}
	h.r, h.err = h.init()
	h.done = true
	return h.r, h.err
}
