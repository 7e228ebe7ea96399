package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"buchat/src/log"
)

// FormatV1 tags corpus files written by this service.
const FormatV1 = "corpus/v1"

type fileV1 struct {
	Format    string      `json:"format"`
	Documents []Document  `json:"documents"`
	Vectors   [][]float32 `json:"vectors"`
}

// legacyGuideFile is the shape the original guide databases were exported
// in: langchain-style documents next to a parallel embedding matrix.
type legacyGuideFile struct {
	Documents []struct {
		PageContent string            `json:"page_content"`
		Metadata    map[string]string `json:"metadata"`
	} `json:"documents"`
	DocEmbeddings [][]float32 `json:"doc_embeddings"`
}

// legacyRestaurantFile is the shape the original restaurant chunk database
// was exported in.
type legacyRestaurantFile struct {
	Chunks      []string    `json:"chunks"`
	Embeddings  [][]float32 `json:"embeddings"`
	ModelName   string      `json:"model_name"`
	CreatedAt   string      `json:"created_at"`
	TotalChunks int         `json:"total_chunks"`
}

// Save writes the store to path in the v1 format. The write is atomic:
// a temp file in the same directory is renamed over the target.
func Save(s *Store, path string) error {
	out := fileV1{
		Format:    FormatV1,
		Documents: s.docs,
		Vectors:   s.vectors,
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".corpus-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace corpus file: %w", err)
	}
	return nil
}

// Load reads a corpus file, dispatching on its shape. Files written by Save
// carry an explicit format tag; the two legacy export shapes are recognized
// by their distinctive keys. Anything else fails loudly.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var probe struct {
		Format        string          `json:"format"`
		DocEmbeddings json.RawMessage `json:"doc_embeddings"`
		Chunks        json.RawMessage `json:"chunks"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	switch {
	case probe.Format == FormatV1:
		return loadV1(data, path)
	case probe.Format != "":
		return nil, fmt.Errorf("unknown corpus format %q in %s", probe.Format, path)
	case len(probe.DocEmbeddings) > 0:
		log.Info("loading legacy guide corpus", "path", path)
		return loadLegacyGuide(data, path)
	case len(probe.Chunks) > 0:
		log.Info("loading legacy restaurant corpus", "path", path)
		return loadLegacyRestaurant(data, path)
	default:
		return nil, fmt.Errorf("unrecognized corpus file shape in %s", path)
	}
}

func loadV1(data []byte, path string) (*Store, error) {
	var f fileV1
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	s := NewStore()
	if err := s.Append(f.Documents, f.Vectors); err != nil {
		return nil, fmt.Errorf("invalid corpus file %s: %w", path, err)
	}
	return s, nil
}

func loadLegacyGuide(data []byte, path string) (*Store, error) {
	var f legacyGuideFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse legacy guide corpus %s: %w", path, err)
	}

	docs := make([]Document, len(f.Documents))
	for i, d := range f.Documents {
		meta := make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			// The old exports used gu_name for the district.
			if k == "gu_name" {
				k = MetaRegion
			}
			meta[k] = v
		}
		docs[i] = Document{
			ID:       fmt.Sprintf("legacy-%d", i),
			Text:     d.PageContent,
			Metadata: meta,
		}
	}

	s := NewStore()
	if err := s.Append(docs, f.DocEmbeddings); err != nil {
		return nil, fmt.Errorf("invalid legacy guide corpus %s: %w", path, err)
	}
	return s, nil
}

func loadLegacyRestaurant(data []byte, path string) (*Store, error) {
	var f legacyRestaurantFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse legacy restaurant corpus %s: %w", path, err)
	}

	if f.TotalChunks != 0 && f.TotalChunks != len(f.Chunks) {
		return nil, fmt.Errorf("legacy restaurant corpus %s declares %d chunks but has %d", path, f.TotalChunks, len(f.Chunks))
	}

	docs := make([]Document, len(f.Chunks))
	for i, chunk := range f.Chunks {
		docs[i] = Document{
			ID:   fmt.Sprintf("legacy-%d", i),
			Text: chunk,
			Metadata: map[string]string{
				MetaCategory: "restaurant",
				MetaType:     "chunk",
			},
		}
	}

	s := NewStore()
	if err := s.Append(docs, f.Embeddings); err != nil {
		return nil, fmt.Errorf("invalid legacy restaurant corpus %s: %w", path, err)
	}
	return s, nil
}
