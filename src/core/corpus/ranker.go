package corpus

import (
	"fmt"
	"sort"
)

// Match pairs a document with its similarity score.
type Match struct {
	Document Document
	Score    float32
}

// Ranker scores a query vector against every document in a store by
// dot product and returns the best k. The scan is linear by design;
// corpora here stay in the low thousands of chunks.
type Ranker struct {
	store    *Store
	minScore float32
}

type RankerOption func(r *Ranker)

// WithMinScore cuts results scoring below the threshold. Zero disables
// the cut, which matches raw dot-product ranking.
func WithMinScore(minScore float32) RankerOption {
	return func(r *Ranker) {
		r.minScore = minScore
	}
}

func NewRanker(store *Store, opts ...RankerOption) *Ranker {
	r := &Ranker{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TopK returns the k highest-scoring documents in descending score order.
// Ties keep insertion order. Returns ErrEmptyCorpus on an empty store,
// ErrDimensionMismatch when the query dimensionality differs from the
// store's, and ErrNoMatch when the threshold cuts every candidate.
func (r *Ranker) TopK(query []float32, k int) ([]Match, error) {
	if r.store.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	if len(query) != r.store.Dimension() {
		return nil, fmt.Errorf("%w: query has %d, store has %d", ErrDimensionMismatch, len(query), r.store.Dimension())
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	matches := make([]Match, 0, r.store.Len())
	for i := 0; i < r.store.Len(); i++ {
		doc, vec := r.store.At(i)
		score := dot(query, vec)
		if r.minScore > 0 && score < r.minScore {
			continue
		}
		matches = append(matches, Match{Document: doc, Score: score})
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
