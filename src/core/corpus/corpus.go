package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a vector does not match the
	// dimensionality already established by the store.
	ErrDimensionMismatch = errors.New("corpus: vector dimension mismatch")
	// ErrEmptyCorpus is returned when ranking is attempted over a store
	// with no documents.
	ErrEmptyCorpus = errors.New("corpus: empty corpus")
	// ErrNoMatch is returned when every candidate falls below the
	// configured relevance threshold.
	ErrNoMatch = errors.New("corpus: no match above threshold")
)

// Metadata keys shared across corpora.
const (
	MetaCategory = "category"
	MetaType     = "type"
	MetaRegion   = "region"
	MetaTitle    = "title"
)

// Document is one retrievable unit of text with its descriptive metadata.
type Document struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Store holds documents and their embedding vectors in parallel slices.
// Vector i always belongs to document i; insertion order is preserved.
type Store struct {
	docs    []Document
	vectors [][]float32
	dim     int
}

// NewStore creates an empty store. The vector dimensionality is fixed by
// the first appended batch.
func NewStore() *Store {
	return &Store{}
}

// Append adds documents with their vectors. The two slices must have equal
// length and every vector must match the store's dimensionality.
func (s *Store) Append(docs []Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: %d documents but %d vectors", ErrDimensionMismatch, len(docs), len(vectors))
	}

	dim := s.dim
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("%w: empty vector at index %d", ErrDimensionMismatch, i)
		}
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return fmt.Errorf("%w: got %d, store has %d", ErrDimensionMismatch, len(v), dim)
		}
	}

	s.dim = dim
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Add appends a single document with its vector.
func (s *Store) Add(doc Document, vector []float32) error {
	return s.Append([]Document{doc}, [][]float32{vector})
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Dimension returns the vector dimensionality, 0 when the store is empty.
func (s *Store) Dimension() int {
	return s.dim
}

// All returns the stored documents in insertion order. The slice is shared;
// callers must not mutate it.
func (s *Store) All() []Document {
	return s.docs
}

// At returns the document and vector at index i.
func (s *Store) At(i int) (Document, []float32) {
	return s.docs[i], s.vectors[i]
}
