package restaurant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"buchat/src/core/corpus"
	"buchat/src/core/restaurant"
)

func sampleRecords() []restaurant.Record {
	mk := func(name, location, description, menu string) restaurant.Record {
		r := restaurant.Record{
			Name:        name,
			Location:    location,
			Description: description,
			Menu:        menu,
			Source:      restaurant.SourceBusanTaste,
		}
		r.SearchText = "맛집 이름: " + name + " 개요: " + description + " 메뉴: " + menu + " 지역: " + location
		return r
	}
	return []restaurant.Record{
		mk("해운대횟집", "해운대구", "바다가 보이는 회 전문점", "모둠회, 물회"),
		mk("서면갈비", "부산진구", "숯불 돼지갈비", "돼지갈비, 냉면"),
		mk("남포분식", "중구", "남포동의 오래된 분식집", "떡볶이, 순대"),
		mk("온천장국밥", "동래구", "동래 온천 옆 국밥집", "돼지국밥"),
	}
}

func TestDetectFoodType(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"해운대 회 맛집", "해산물"},
		{"삼겹살 먹고 싶다", "고기"},
		{"초밥 잘하는 곳", "스시"},
		{"피자 추천", "양식"},
		{"근처 카페", "카페"},
		{"비자 연장", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := restaurant.DetectFoodType(tt.query); got != tt.want {
				t.Errorf("DetectFoodType(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"서면 맛집 추천", "서면"},
		{"해운대 근처 저녁", "해운대"},
		{"부산역 앞 국밥", "부산역"},
		{"맛집 추천", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := restaurant.DetectRegion(tt.query); got != tt.want {
				t.Errorf("DetectRegion(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchByKeywordsRegionFilter(t *testing.T) {
	got := restaurant.SearchByKeywords(sampleRecords(), "해운대 회 맛집")
	if len(got) != 1 {
		t.Fatalf("got %d results, want only the 해운대구 match: %+v", len(got), got)
	}
	if got[0].Name != "해운대횟집" {
		t.Errorf("top result = %q, want 해운대횟집", got[0].Name)
	}
}

func TestSearchByKeywordsFoodFilterNeverEmpties(t *testing.T) {
	// No record matches 중식, so the cuisine filter would empty the list
	// and must be skipped; the region keyword still selects 서면.
	got := restaurant.SearchByKeywords(sampleRecords(), "서면 짜장면")
	if len(got) == 0 {
		t.Fatal("filters must never empty a non-empty result list")
	}
	if got[0].Name != "서면갈비" {
		t.Errorf("top result = %q, want the 서면 record", got[0].Name)
	}
}

func TestSearchByKeywordsScoringPrefersNameHit(t *testing.T) {
	got := restaurant.SearchByKeywords(sampleRecords(), "온천장국밥")
	if len(got) == 0 || got[0].Name != "온천장국밥" {
		t.Fatalf("exact name query must rank the named record first, got %+v", got)
	}
}

func TestSearchByKeywordsCapsAtTen(t *testing.T) {
	var records []restaurant.Record
	for i := 0; i < 15; i++ {
		r := restaurant.Record{Name: "국밥집" + strings.Repeat("가", i+1), Location: "중구"}
		r.SearchText = "맛집 이름: " + r.Name + " 메뉴: 국밥"
		records = append(records, r)
	}
	got := restaurant.SearchByKeywords(records, "국밥")
	if len(got) != 10 {
		t.Errorf("got %d results, want the top 10", len(got))
	}
}

func TestContainsKorean(t *testing.T) {
	if !restaurant.ContainsKorean("seafood 맛집") {
		t.Error("mixed text contains korean")
	}
	if restaurant.ContainsKorean("good seafood near Haeundae") {
		t.Error("latin-only text must not report korean")
	}
}

type fakeProvider struct {
	embedFn     func(text string) ([]float32, error)
	generateFn  func(system, prompt string) (string, error)
	translateFn func(text, targetLang string) (string, error)

	translated []string
	embedded   []string
}

func (f *fakeProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	f.embedded = append(f.embedded, text)
	if f.embedFn == nil {
		return []float32{1, 0}, nil
	}
	return f.embedFn(text)
}

func (f *fakeProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	if f.generateFn == nil {
		return "직접 생성된 답변", nil
	}
	return f.generateFn(system, prompt)
}

func (f *fakeProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	f.translated = append(f.translated, text)
	if f.translateFn == nil {
		return "번역된 " + text, nil
	}
	return f.translateFn(text, targetLang)
}

type fixedResolver struct {
	district string
}

func (r fixedResolver) ResolveRegion(ctx context.Context, query string) (string, error) {
	return r.district, nil
}

func chunkStore(t *testing.T, records []restaurant.Record, vectors [][]float32) *corpus.Store {
	t.Helper()
	s := corpus.NewStore()
	for i, r := range records {
		doc := corpus.Document{ID: r.Name, Text: r.ChunkText(), Metadata: map[string]string{"category": "restaurant"}}
		if err := s.Add(doc, vectors[i]); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestSearcherVectorPath(t *testing.T) {
	records := sampleRecords()
	store := chunkStore(t, records, [][]float32{{1, 0}, {0, 1}, {0.2, 0.2}, {0.1, 0.1}})
	p := &fakeProvider{}
	s := restaurant.NewSearcher(records, store, p, nil)

	answer := s.Search(context.Background(), "회 맛집 추천")
	if !strings.Contains(answer, "해운대횟집") {
		t.Errorf("answer = %q, want the best vector match listed", answer)
	}
	if !strings.Contains(answer, "맛집을 찾아드렸습니다") {
		t.Errorf("answer = %q, want the recommendation framing for 추천 queries", answer)
	}
}

func TestSearcherKeywordFallbackOnEmbedFailure(t *testing.T) {
	records := sampleRecords()
	store := chunkStore(t, records, [][]float32{{1, 0}, {0, 1}, {0.2, 0.2}, {0.1, 0.1}})
	p := &fakeProvider{
		embedFn: func(text string) ([]float32, error) { return nil, errors.New("embedder down") },
	}
	s := restaurant.NewSearcher(records, store, p, nil)

	answer := s.Search(context.Background(), "서면 갈비")
	if !strings.Contains(answer, "서면갈비") {
		t.Errorf("answer = %q, want the keyword result", answer)
	}
}

func TestSearcherWithoutStoreUsesKeywords(t *testing.T) {
	p := &fakeProvider{}
	s := restaurant.NewSearcher(sampleRecords(), nil, p, nil)

	answer := s.Search(context.Background(), "동래 국밥")
	if !strings.Contains(answer, "온천장국밥") {
		t.Errorf("answer = %q, want the keyword result", answer)
	}
	if len(p.embedded) != 0 {
		t.Error("no store means no embedding calls")
	}
}

func TestSearcherResolverAugmentsQuery(t *testing.T) {
	records := sampleRecords()
	store := chunkStore(t, records, [][]float32{{1, 0}, {0, 1}, {0.2, 0.2}, {0.1, 0.1}})
	p := &fakeProvider{}
	s := restaurant.NewSearcher(records, store, p, fixedResolver{district: "수영구"})

	s.Search(context.Background(), "광안리 회")
	if len(p.embedded) != 1 || !strings.Contains(p.embedded[0], "수영구") {
		t.Errorf("embedded query = %q, want the resolved district appended", p.embedded)
	}
}

func TestSearcherTranslatesForeignQuery(t *testing.T) {
	p := &fakeProvider{
		translateFn: func(text, targetLang string) (string, error) {
			return "해운대 회", nil
		},
	}
	s := restaurant.NewSearcher(sampleRecords(), nil, p, nil)

	answer := s.Search(context.Background(), "Haeundae sashimi")
	if len(p.translated) != 1 {
		t.Fatalf("translate called %d times, want 1", len(p.translated))
	}
	if !strings.Contains(answer, "해운대횟집") {
		t.Errorf("answer = %q, want results from the translated query", answer)
	}
}

func TestSearcherKoreanQuerySkipsTranslation(t *testing.T) {
	p := &fakeProvider{}
	s := restaurant.NewSearcher(sampleRecords(), nil, p, nil)

	s.Search(context.Background(), "해운대 회")
	if len(p.translated) != 0 {
		t.Error("korean queries must not be translated")
	}
}

func TestSearcherExactNameDetail(t *testing.T) {
	p := &fakeProvider{}
	s := restaurant.NewSearcher(sampleRecords(), nil, p, nil)

	answer := s.Search(context.Background(), "해운대횟집 영업시간")
	if !strings.Contains(answer, "상세 정보입니다") {
		t.Errorf("answer = %q, want the single-record detail rendering", answer)
	}
}

func TestSearcherNoResultsDirectCompletion(t *testing.T) {
	p := &fakeProvider{}
	s := restaurant.NewSearcher(nil, nil, p, nil)

	answer := s.Search(context.Background(), "우주 음식")
	if answer != "직접 생성된 답변" {
		t.Errorf("answer = %q, want the direct completion", answer)
	}
}

func TestSearcherNoResultsCompletionFailureStillAnswers(t *testing.T) {
	p := &fakeProvider{
		generateFn: func(system, prompt string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	s := restaurant.NewSearcher(nil, nil, p, nil)

	answer := s.Search(context.Background(), "우주 음식")
	if answer == "" {
		t.Fatal("answer must never be empty")
	}
	if !strings.Contains(answer, "우주 음식") {
		t.Errorf("fallback answer = %q, want it to echo the query", answer)
	}
}
