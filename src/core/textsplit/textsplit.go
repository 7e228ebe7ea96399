package textsplit

import (
	"strings"
)

// DefaultMinChunkLen drops fragments too short to retrieve usefully.
const DefaultMinChunkLen = 50

// Splitter cuts text into overlapping chunks, preferring to end each chunk
// at a newline, then at sentence punctuation, before falling back to a hard
// cut at the size limit. Sizes count runes, not bytes, so Korean text
// chunks the same as ASCII.
type Splitter struct {
	size        int
	overlap     int
	minChunkLen int
}

type Option func(s *Splitter)

// WithMinChunkLen overrides the minimum kept chunk length.
func WithMinChunkLen(n int) Option {
	return func(s *Splitter) {
		s.minChunkLen = n
	}
}

func NewSplitter(size, overlap int, opts ...Option) *Splitter {
	s := &Splitter{
		size:        size,
		overlap:     overlap,
		minChunkLen: DefaultMinChunkLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split returns the chunks of text. Text no longer than the chunk size is
// returned whole. Chunks shorter than the minimum length are dropped.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			end = len(runes)
		} else if cut := boundary(runes, start, end); cut > start {
			end = cut
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(chunk)) >= s.minChunkLen {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// boundary finds the rightmost cut point in (start, end]: first by newline,
// then by sentence-ending punctuation. Returns -1 when neither occurs.
func boundary(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > start; i-- {
		switch runes[i-1] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}
