package restaurant

import (
	"sort"
	"strings"
)

// MaxResults caps every result list handed to rendering.
const MaxResults = 10

// foodPatterns detect which cuisine a query asks for.
var foodPatterns = map[string][]string{
	"고기":  {"고기", "고기집", "삼겹살", "갈비", "불고기", "돼지고기", "소고기", "갈비살", "고깃집"},
	"해산물": {"해산물", "해산물집", "생선", "회", "조개", "새우", "게", "문어", "오징어", "굴", "전복", "홍합", "바다", "수산물"},
	"스시":  {"스시", "스시집", "초밥", "사시미", "일식", "일본"},
	"양식":  {"양식", "양식집", "피자", "파스타", "스테이크", "샐러드", "이탈리안"},
	"한식":  {"한식", "한식집", "국밥", "국수", "비빔밥", "김치", "된장", "순대", "떡볶이"},
	"중식":  {"중식", "중식집", "중국", "짜장면", "탕수육", "마파두부", "깐풍기", "훠궈"},
	"카페":  {"카페", "커피", "베이커리", "디저트", "케이크", "빵"},
	"피자":  {"피자"},
	"치킨":  {"치킨", "닭", "후라이드", "양념"},
}

// foodScoreKeywords are the wider lists used for scoring and filtering.
var foodScoreKeywords = map[string][]string{
	"고기":  {"고기", "고기집", "삼겹살", "갈비", "불고기", "돼지고기", "소고기", "갈비살", "고깃집", "삼겹살집", "갈비집"},
	"해산물": {"해산물", "해산물집", "생선", "회", "조개", "새우", "게", "문어", "오징어", "굴", "전복", "홍합", "바다", "수산물", "회집", "생선집"},
	"스시":  {"스시", "스시집", "초밥", "사시미", "일식", "일본", "초밥집"},
	"양식":  {"양식", "양식집", "피자", "파스타", "스테이크", "샐러드", "이탈리안", "피자집", "파스타집"},
	"한식":  {"한식", "한식집", "국밥", "국수", "비빔밥", "김치", "된장", "순대", "떡볶이", "국밥집", "국수집"},
	"중식":  {"중식", "중식집", "중국", "짜장면", "탕수육", "마파두부", "깐풍기", "훠궈", "짜장면집"},
	"카페":  {"카페", "커피", "베이커리", "디저트", "케이크", "빵"},
	"피자":  {"피자", "피자집"},
	"치킨":  {"치킨", "닭", "후라이드", "양념", "치킨집"},
}

// foodDetectionOrder keeps query detection deterministic; map iteration
// order would make 회 sometimes win over 고기 and sometimes lose.
var foodDetectionOrder = []string{"고기", "해산물", "스시", "양식", "한식", "중식", "카페", "피자", "치킨"}

// regionKeywords map a spoken area to every string that identifies it in
// the data, the district included.
var regionKeywords = map[string][]string{
	"서면":   {"서면", "부전동", "부전", "부산진구"},
	"해운대":  {"해운대", "해운대구"},
	"남포동":  {"남포동", "중구"},
	"광안리":  {"광안리", "광안대교", "수영구"},
	"동래":   {"동래", "동래구"},
	"부산대":  {"부산대", "금정구", "장전동"},
	"부산시청": {"부산시청", "연제구"},
	"부산역":  {"부산역", "동구"},
}

var regionDetectionOrder = []string{"서면", "해운대", "남포동", "광안리", "동래", "부산대", "부산시청", "부산역"}

// DetectFoodType returns the cuisine a query mentions, empty for none.
func DetectFoodType(query string) string {
	lower := strings.ToLower(query)
	for _, foodType := range foodDetectionOrder {
		for _, pattern := range foodPatterns[foodType] {
			if strings.Contains(lower, pattern) {
				return foodType
			}
		}
	}
	return ""
}

// DetectRegion returns the area a query mentions, empty for none.
func DetectRegion(query string) string {
	lower := strings.ToLower(query)
	for _, region := range regionDetectionOrder {
		if strings.Contains(lower, region) {
			return region
		}
	}
	return ""
}

// Scored pairs a record with its keyword score.
type Scored struct {
	Record Record
	Score  int
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// SearchByKeywords is the deterministic fallback retrieval: score every
// record against the query, post-filter by cuisine and region, return the
// top ten. A filter that would empty the list is skipped rather than
// applied.
func SearchByKeywords(records []Record, query string) []Record {
	queryLower := strings.ToLower(query)
	queryFoodType := DetectFoodType(query)
	queryRegion := DetectRegion(query)
	tokens := strings.Fields(queryLower)

	var results []Scored
	for _, r := range records {
		score := 0
		searchText := strings.ToLower(r.SearchText)
		name := strings.ToLower(r.Name)
		location := strings.ToLower(r.Location)
		description := strings.ToLower(r.Description)
		menu := strings.ToLower(r.Menu)

		if queryFoodType != "" {
			keywords := foodScoreKeywords[queryFoodType]
			switch {
			case containsAny(searchText, keywords):
				score += 25
			case containsAny(name, keywords):
				score += 20
			case containsAny(description, keywords):
				score += 15
			case containsAny(menu, keywords):
				score += 10
			}
		}

		if queryRegion != "" {
			keywords := regionKeywords[queryRegion]
			switch {
			case containsAny(location, keywords):
				score += 15
			case containsAny(searchText, keywords):
				score += 10
			}
		}

		for _, token := range tokens {
			if len([]rune(token)) < 2 {
				continue
			}
			if strings.Contains(name, token) {
				score += 5
			}
			if strings.Contains(location, token) {
				score += 4
			}
			if strings.Contains(description, token) {
				score += 3
			}
			if strings.Contains(menu, token) {
				score += 2
			}
			if strings.Contains(searchText, token) {
				score += 1
			}
		}

		// Whole-query containment scores highest of all.
		if strings.Contains(name, queryLower) {
			score += 25
		}
		if strings.Contains(location, queryLower) {
			score += 20
		}
		if strings.Contains(description, queryLower) {
			score += 15
		}
		if strings.Contains(menu, queryLower) {
			score += 12
		}

		if score > 0 {
			results = append(results, Scored{Record: r, Score: score})
		}
	}

	if queryFoodType != "" {
		keywords := foodScoreKeywords[queryFoodType]
		var filtered []Scored
		for _, s := range results {
			if containsAny(strings.ToLower(s.Record.SearchText), keywords) ||
				containsAny(strings.ToLower(s.Record.Name), keywords) ||
				containsAny(strings.ToLower(s.Record.Description), keywords) ||
				containsAny(strings.ToLower(s.Record.Menu), keywords) {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			results = filtered
		}
	}

	if queryRegion != "" {
		keywords := regionKeywords[queryRegion]
		var filtered []Scored
		for _, s := range results {
			if containsAny(strings.ToLower(s.Record.Location), keywords) {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			results = filtered
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	out := make([]Record, 0, MaxResults)
	for _, s := range results {
		if len(out) == MaxResults {
			break
		}
		out = append(out, s.Record)
	}
	return out
}
