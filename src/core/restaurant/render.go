package restaurant

import (
	"fmt"
	"strings"
)

// RenderDetail formats one restaurant with every known field, used when
// the query named it directly.
func RenderDetail(r Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s'에 대한 상세 정보입니다! 🍽️\n", r.Name)

	fmt.Fprintf(&b, "\n**%s**", r.Name)
	if r.Category != "" {
		fmt.Fprintf(&b, " (%s)", r.Category)
	}
	if r.Location != "" {
		fmt.Fprintf(&b, " - %s", r.Location)
	}
	if r.Rating > 0 {
		fmt.Fprintf(&b, " ⭐ %.1f", r.Rating)
	}
	if r.Address != "" {
		fmt.Fprintf(&b, "\n📍 **주소**: %s", r.Address)
	}
	if r.Phone != "" {
		fmt.Fprintf(&b, "\n📞 **전화번호**: %s", r.Phone)
	}
	if r.Hours != "" {
		fmt.Fprintf(&b, "\n🕒 **영업시간**: %s", r.Hours)
	}
	if r.Menu != "" {
		fmt.Fprintf(&b, "\n🍽️ **메뉴**: %s", r.Menu)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "\n📝 **설명**: %s", r.Description)
	}

	b.WriteString("\n더 자세한 정보가 필요하시면 말씀해주세요!")
	return b.String()
}

// RenderList formats a ranked result list.
func RenderList(query string, results []Record) string {
	var b strings.Builder

	if containsAny(query, []string{"추천", "어디", "좋은"}) {
		fmt.Fprintf(&b, "'%s'에 대한 맛집을 찾아드렸습니다! 🍽️\n", query)
	} else {
		fmt.Fprintf(&b, "'%s' 검색 결과입니다! 🍽️\n", query)
	}

	fmt.Fprintf(&b, "\n총 %d개의 맛집을 찾았습니다:", len(results))

	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, r.Name)
		if r.Category != "" {
			fmt.Fprintf(&b, " (%s)", r.Category)
		}
		if r.Location != "" {
			fmt.Fprintf(&b, " - %s", r.Location)
		}
		if r.Rating > 0 {
			fmt.Fprintf(&b, " ⭐ %.1f", r.Rating)
		}
		if r.Address != "" {
			fmt.Fprintf(&b, "\n   📍 %s", r.Address)
		}
		if r.Phone != "" {
			fmt.Fprintf(&b, "\n   📞 %s", r.Phone)
		}
		if r.Hours != "" {
			fmt.Fprintf(&b, "\n   🕒 %s", r.Hours)
		}
		if r.Menu != "" {
			menu := r.Menu
			if runes := []rune(menu); len(runes) > 100 {
				menu = string(runes[:100]) + "..."
			}
			fmt.Fprintf(&b, "\n   🍽️ %s", menu)
		}
	}

	b.WriteString("\n더 자세한 정보가 필요하시면 맛집 이름을 말씀해주세요!")
	return b.String()
}
