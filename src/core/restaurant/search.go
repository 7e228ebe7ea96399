package restaurant

import (
	"context"
	"fmt"
	"strings"

	"buchat/src/core/classify"
	"buchat/src/core/corpus"
	"buchat/src/log"
)

// SemanticTopK is how many chunks the vector pass retrieves before
// deduplication trims the list to MaxResults.
const SemanticTopK = 8

// Provider is the slice of the model client the searcher consumes.
type Provider interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, system, prompt string) (string, error)
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

const directAnswerPromptFmt = `부산 맛집에 대한 질문에 대해 100자 이내로 간단하고 친근하게 답변해주세요.

질문: %s

답변은 다음 조건을 만족해야 합니다:
1. 100자 이내로 간단하게
2. 친근하고 도움이 되는 톤
3. 부산 맛집 관련 정보 제공
4. 구체적인 추천이나 조언 포함`

// Searcher answers restaurant queries over the normalized records and,
// when present, the chunk corpus. Every degraded path still produces a
// usable answer: vector search falls back to keyword scoring, keyword
// misses fall back to a direct completion.
type Searcher struct {
	records  []Record
	store    *corpus.Store
	ranker   *corpus.Ranker
	provider Provider
	resolver classify.RegionResolver
}

func NewSearcher(records []Record, store *corpus.Store, provider Provider, resolver classify.RegionResolver) *Searcher {
	s := &Searcher{
		records:  records,
		store:    store,
		provider: provider,
		resolver: resolver,
	}
	if store != nil {
		s.ranker = corpus.NewRanker(store)
	}
	return s
}

// Search runs the full pipeline for one query and returns the rendered
// answer. It never returns an empty string.
func (s *Searcher) Search(ctx context.Context, query string) string {
	enhanced := query
	if s.resolver != nil {
		district, err := s.resolver.ResolveRegion(ctx, query)
		if err != nil {
			log.Error(err, "district resolution failed, searching without it", "query", query)
		} else if district != "" && !strings.Contains(query, district) {
			enhanced = query + " " + district
			log.Debug("augmented restaurant query", "query", query, "district", district)
		}
	}

	translated := enhanced
	if !ContainsKorean(enhanced) {
		t, err := s.provider.Translate(ctx, enhanced, "한국어")
		if err != nil {
			log.Error(err, "query translation failed, searching with the original", "query", enhanced)
		} else {
			translated = t
			log.Debug("translated restaurant query", "from", enhanced, "to", translated)
		}
	}

	results := dedupeByName(s.retrieve(ctx, translated))
	return s.renderAnswer(ctx, query, results)
}

// retrieve is the vector pass with its keyword fallback.
func (s *Searcher) retrieve(ctx context.Context, query string) []Record {
	if s.store == nil || s.store.Len() == 0 {
		return SearchByKeywords(s.records, query)
	}

	vec, err := s.provider.EmbedOne(ctx, query)
	if err != nil {
		log.Error(err, "restaurant embedding failed, using keyword search")
		return SearchByKeywords(s.records, query)
	}

	matches, err := s.ranker.TopK(vec, SemanticTopK)
	if err != nil {
		log.Error(err, "restaurant ranking failed, using keyword search")
		return SearchByKeywords(s.records, query)
	}

	var results []Record
	for _, m := range matches {
		if r := FromChunk(m.Document.Text); r != nil {
			results = append(results, *r)
		}
	}
	if len(results) == 0 {
		log.Info("no presentable chunks retrieved, using keyword search", "query", query)
		return SearchByKeywords(s.records, query)
	}
	return results
}

func (s *Searcher) renderAnswer(ctx context.Context, query string, results []Record) string {
	if len(results) == 0 {
		answer, err := s.provider.Generate(ctx, "", fmt.Sprintf(directAnswerPromptFmt, query))
		if err != nil {
			log.Error(err, "direct restaurant answer failed", "query", query)
			return fmt.Sprintf("부산에서 %s 맛집을 찾고 계시는군요! 해운대구의 해산물 맛집이나 서면의 분식집을 추천해드려요. 더 구체적인 지역이나 음식 종류를 말씀해주시면 더 정확한 추천을 드릴 수 있어요.", query)
		}
		return answer
	}

	first := results[0]
	if first.Name != "" && strings.Contains(strings.ToLower(query), strings.ToLower(strings.TrimSpace(first.Name))) {
		return RenderDetail(first)
	}

	return RenderList(query, results)
}

func dedupeByName(results []Record) []Record {
	seen := make(map[string]bool, len(results))
	var unique []Record
	for _, r := range results {
		if r.Name == "" || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		unique = append(unique, r)
		if len(unique) == MaxResults {
			break
		}
	}
	return unique
}

// ContainsKorean reports whether any rune is Hangul jamo or a composed
// syllable. Queries without Korean script get translated before embedding.
func ContainsKorean(s string) bool {
	for _, r := range s {
		if (r >= 0x3131 && r <= 0x3163) || (r >= 0xAC00 && r <= 0xD7AF) {
			return true
		}
	}
	return false
}
