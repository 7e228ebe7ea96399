package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"buchat/src/core/corpus"
)

func doc(id, text string) corpus.Document {
	return corpus.Document{ID: id, Text: text}
}

func TestStoreAppend(t *testing.T) {
	tests := []struct {
		name    string
		docs    []corpus.Document
		vectors [][]float32
		wantErr error
	}{
		{
			name:    "matching batch",
			docs:    []corpus.Document{doc("1", "a"), doc("2", "b")},
			vectors: [][]float32{{1, 0}, {0, 1}},
		},
		{
			name:    "length mismatch",
			docs:    []corpus.Document{doc("1", "a")},
			vectors: [][]float32{{1, 0}, {0, 1}},
			wantErr: corpus.ErrDimensionMismatch,
		},
		{
			name:    "dimension mismatch inside batch",
			docs:    []corpus.Document{doc("1", "a"), doc("2", "b")},
			vectors: [][]float32{{1, 0}, {0, 1, 2}},
			wantErr: corpus.ErrDimensionMismatch,
		},
		{
			name:    "empty vector",
			docs:    []corpus.Document{doc("1", "a")},
			vectors: [][]float32{{}},
			wantErr: corpus.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := corpus.NewStore()
			err := s.Append(tt.docs, tt.vectors)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Append() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && s.Len() != len(tt.docs) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.docs))
			}
		})
	}
}

func TestStoreAppendRejectsLaterDimensionChange(t *testing.T) {
	s := corpus.NewStore()
	if err := s.Append([]corpus.Document{doc("1", "a")}, [][]float32{{1, 0, 0}}); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}
	err := s.Append([]corpus.Document{doc("2", "b")}, [][]float32{{1, 0}})
	if !errors.Is(err, corpus.ErrDimensionMismatch) {
		t.Fatalf("second Append() error = %v, want ErrDimensionMismatch", err)
	}
	if s.Len() != 1 {
		t.Errorf("failed append must not grow the store, Len() = %d", s.Len())
	}
}

func TestRankerTopK(t *testing.T) {
	s := corpus.NewStore()
	err := s.Append(
		[]corpus.Document{doc("far", "far"), doc("near", "near"), doc("mid", "mid")},
		[][]float32{{0.1, 0}, {1, 0}, {0.5, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := corpus.NewRanker(s).TopK([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("TopK() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("TopK() returned %d matches, want 2", len(got))
	}
	if got[0].Document.ID != "near" || got[1].Document.ID != "mid" {
		t.Errorf("TopK() order = [%s %s], want [near mid]", got[0].Document.ID, got[1].Document.ID)
	}
}

func TestRankerStableTies(t *testing.T) {
	s := corpus.NewStore()
	err := s.Append(
		[]corpus.Document{doc("first", "a"), doc("second", "b"), doc("third", "c")},
		[][]float32{{1, 0}, {1, 0}, {1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := corpus.NewRanker(s).TopK([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("TopK() error = %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Document.ID != want {
			t.Errorf("tied result %d = %s, want insertion order %s", i, got[i].Document.ID, want)
		}
	}
}

func TestRankerErrors(t *testing.T) {
	empty := corpus.NewStore()
	if _, err := corpus.NewRanker(empty).TopK([]float32{1}, 1); !errors.Is(err, corpus.ErrEmptyCorpus) {
		t.Errorf("empty store error = %v, want ErrEmptyCorpus", err)
	}

	s := corpus.NewStore()
	if err := s.Add(doc("1", "a"), []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := corpus.NewRanker(s).TopK([]float32{1, 0, 0}, 1); !errors.Is(err, corpus.ErrDimensionMismatch) {
		t.Errorf("dimension conflict error = %v, want ErrDimensionMismatch", err)
	}
}

func TestRankerMinScore(t *testing.T) {
	s := corpus.NewStore()
	err := s.Append(
		[]corpus.Document{doc("high", "a"), doc("low", "b")},
		[][]float32{{1, 0}, {0.1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	r := corpus.NewRanker(s, corpus.WithMinScore(0.5))
	got, err := r.TopK([]float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("TopK() error = %v", err)
	}
	if len(got) != 1 || got[0].Document.ID != "high" {
		t.Fatalf("TopK() with threshold = %v, want only high", got)
	}

	if _, err := r.TopK([]float32{0, 1}, 5); !errors.Is(err, corpus.ErrNoMatch) {
		t.Errorf("all-below-threshold error = %v, want ErrNoMatch", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := corpus.NewStore()
	err := s.Append(
		[]corpus.Document{
			{ID: "1", Text: "쓰레기 배출 안내", Metadata: map[string]string{"category": "다누리", "type": "생활정보", "region": "해운대구"}},
			{ID: "2", Text: "근로계약서 작성", Metadata: map[string]string{"category": "외국인근로자", "type": "근로"}},
		},
		[][]float32{{0.25, -1, 3}, {0, 0.5, 0.125}},
	)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "guide.json")
	if err := corpus.Save(s, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != s.Len() || loaded.Dimension() != s.Dimension() {
		t.Fatalf("loaded store has %d docs dim %d, want %d docs dim %d",
			loaded.Len(), loaded.Dimension(), s.Len(), s.Dimension())
	}
	for i := 0; i < s.Len(); i++ {
		wantDoc, wantVec := s.At(i)
		gotDoc, gotVec := loaded.At(i)
		if !reflect.DeepEqual(gotDoc, wantDoc) {
			t.Errorf("document %d = %+v, want %+v", i, gotDoc, wantDoc)
		}
		if !reflect.DeepEqual(gotVec, wantVec) {
			t.Errorf("vector %d = %v, want %v", i, gotVec, wantVec)
		}
	}
}

func TestLoadLegacyGuideShape(t *testing.T) {
	raw := `{
		"documents": [
			{"page_content": "대형폐기물 신고 절차", "metadata": {"category": "다누리", "type": "생활정보", "gu_name": "중구", "title": "폐기물"}}
		],
		"doc_embeddings": [[0.5, 0.5]]
	}`
	path := filepath.Join(t.TempDir(), "legacy_guide.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, _ := s.At(0)
	if got.Text != "대형폐기물 신고 절차" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Metadata["region"] != "중구" {
		t.Errorf("gu_name must map to region, got metadata %v", got.Metadata)
	}
	if got.Metadata["category"] != "다누리" || got.Metadata["title"] != "폐기물" {
		t.Errorf("metadata not preserved: %v", got.Metadata)
	}
}

func TestLoadLegacyRestaurantShape(t *testing.T) {
	raw := `{
		"chunks": ["식당이름: 할매국밥\n지역: 부산진구", "식당이름: 초장집\n지역: 중구"],
		"embeddings": [[1, 0], [0, 1]],
		"model_name": "text-embedding-004",
		"created_at": "2024-11-02",
		"total_chunks": 2
	}`
	path := filepath.Join(t.TempDir(), "legacy_restaurant.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	got, _ := s.At(0)
	if got.Metadata["category"] != "restaurant" {
		t.Errorf("metadata = %v, want restaurant category", got.Metadata)
	}
}

func TestLoadUnknownShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown format tag", raw: `{"format": "corpus/v9", "documents": []}`},
		{name: "no recognizable keys", raw: `{"stuff": [1, 2, 3]}`},
		{name: "declared count mismatch", raw: `{"chunks": ["a"], "embeddings": [[1]], "total_chunks": 7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tt.raw), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := corpus.Load(path); err == nil {
				t.Fatal("Load() should fail on unknown shapes")
			}
		})
	}
}
