package classify

// Rule maps any of its patterns, matched as case-insensitive substrings,
// to a canonical value. Tables are ordered; the first matching rule wins.
type Rule struct {
	Patterns  []string
	Canonical string
}

// Districts is the Busan district gazetteer. Resolver output must name one
// of these to be accepted.
var Districts = []string{
	"중구", "서구", "동구", "영도구", "부산진구", "동래구", "남구", "북구",
	"해운대구", "사하구", "금정구", "강서구", "연제구", "수영구", "사상구", "기장군",
}

// regionRules resolve neighborhood names and common shorthand to districts.
// Alias rules come before the bare district names so that, for example,
// 해운대 wins before a generic scan would try 대구-like fragments.
var regionRules = []Rule{
	{Patterns: []string{"서면역", "부전동", "부전", "서면"}, Canonical: "부산진구"},
	{Patterns: []string{"해운대해수욕장", "해운대역", "해운대"}, Canonical: "해운대구"},
	{Patterns: []string{"남포동", "용두산", "광복동", "자갈치"}, Canonical: "중구"},
	{Patterns: []string{"광안리", "광안대교", "수영"}, Canonical: "수영구"},
	{Patterns: []string{"온천동", "동래"}, Canonical: "동래구"},
	{Patterns: []string{"부산대", "장전동"}, Canonical: "금정구"},
	{Patterns: []string{"사상"}, Canonical: "사상구"},
	{Patterns: []string{"연산동"}, Canonical: "연제구"},
	{Patterns: []string{"구포"}, Canonical: "북구"},
	{Patterns: []string{"명지"}, Canonical: "강서구"},
	{Patterns: []string{"장안", "기장"}, Canonical: "기장군"},
	{Patterns: []string{"태종대"}, Canonical: "영도구"},
	{Patterns: []string{"감천문화마을"}, Canonical: "사하구"},
}

// landmarkRules resolve city landmarks to their districts. Checked after
// the neighborhood aliases.
var landmarkRules = []Rule{
	{Patterns: []string{"부산시청"}, Canonical: "연제구"},
	{Patterns: []string{"부산역"}, Canonical: "동구"},
	{Patterns: []string{"부산타워"}, Canonical: "중구"},
	{Patterns: []string{"부산고속터미널"}, Canonical: "금정구"},
	{Patterns: []string{"벡스코"}, Canonical: "해운대구"},
}

// wasteKeywords flag questions about household waste disposal.
var wasteKeywords = []string{
	"대형폐기물", "음식물쓰레기", "분리수거", "종량제", "재활용",
	"쓰레기", "폐기", "수거", "배출", "버리",
}

// foodRules resolve dish and cuisine mentions to a restaurant category.
var foodRules = []Rule{
	{Patterns: []string{"해산물", "횟집", "물회", "아구찜", "해물", "생선", "조개", "회"}, Canonical: "해산물"},
	{Patterns: []string{"삼겹살", "돼지고기", "소고기", "불고기", "갈비", "구이", "고기"}, Canonical: "고기"},
	{Patterns: []string{"초밥", "사시미", "스시", "일식"}, Canonical: "스시"},
	{Patterns: []string{"파스타", "스테이크", "이탈리안", "양식"}, Canonical: "양식"},
	{Patterns: []string{"국밥", "김치찌개", "된장찌개", "비빔밥", "냉면", "백반", "한식"}, Canonical: "한식"},
	{Patterns: []string{"짜장면", "짬뽕", "탕수육", "중국집", "중식"}, Canonical: "중식"},
	{Patterns: []string{"베이커리", "브런치", "디저트", "커피", "빵집", "카페"}, Canonical: "카페"},
	{Patterns: []string{"피자"}, Canonical: "피자"},
	{Patterns: []string{"통닭", "닭강정", "치킨"}, Canonical: "치킨"},
}

func init() {
	// The bare district names close out the region table.
	for _, d := range Districts {
		regionRules = append(regionRules, Rule{Patterns: []string{d}, Canonical: d})
	}
}
