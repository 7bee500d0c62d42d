// Package similarity provides the three scoring primitives used by profile
// matching: character-level ratio, term-frequency cosine, and semantic
// similarity over embeddings. All scores are in [0,1] and empty input scores
// 0.0 rather than erroring.
package similarity

import (
	"context"

	"horse.fit/vitae/internal/textnorm"
)

// SemanticScorer scores two raw text spans for semantic similarity. It is the
// only collaborator the engine calls out to; implementations may be slow and
// fallible, and callers are expected to recover from errors locally.
type SemanticScorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Engine bundles the similarity primitives behind one injected instance.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	normalizer *textnorm.Normalizer
	semantic   SemanticScorer
}

// New builds an Engine. semantic may be nil, in which case Vector always
// reports an unavailable-scorer error and callers fall back.
func New(normalizer *textnorm.Normalizer, semantic SemanticScorer) *Engine {
	if normalizer == nil {
		normalizer = textnorm.New(nil)
	}
	return &Engine{normalizer: normalizer, semantic: semantic}
}

// Normalizer exposes the engine's normalizer so callers compare with the
// exact same canonical form the engine scores with.
func (e *Engine) Normalizer() *textnorm.Normalizer {
	return e.normalizer
}
