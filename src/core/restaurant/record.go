package restaurant

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Source names for the two restaurant datasets.
const (
	SourceBusanTaste  = "부산의맛"
	SourceTaxiRanking = "택슐랭"
	SourceVector      = "벡터DB"
)

// Record is one restaurant, normalized from either dataset. SearchText is
// a deterministic concatenation of the labeled fields and drives both
// keyword scoring and chunk generation.
type Record struct {
	Name        string
	Category    string
	Location    string
	Address     string
	Phone       string
	Rating      float64
	Description string
	Menu        string
	Hours       string
	Closed      string
	Reason      string
	Source      string
	SearchText  string
}

// LocalizedText is a value the 부산의맛 dataset stores either as a plain
// string or as {"한글": ..., "영어": ...}. Korean wins when both exist.
type LocalizedText string

func (l *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LocalizedText(s)
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized text is neither string nor object: %w", err)
	}
	if v, ok := m["한글"]; ok && v != "" {
		*l = LocalizedText(v)
	} else {
		*l = LocalizedText(m["영어"])
	}
	return nil
}

// busanTasteEntry is one restaurant in the district-keyed 부산의맛 export.
type busanTasteEntry struct {
	Name     LocalizedText `json:"식당이름"`
	Overview LocalizedText `json:"개요"`
	Menu     LocalizedText `json:"메뉴"`
	Address  string        `json:"주소"`
	Phone    string        `json:"전화번호"`
	Hours    string        `json:"영업시간"`
	Closed   string        `json:"휴무일"`
}

// busanTasteFile wraps the districts under a single edition key.
type busanTasteFile struct {
	Edition map[string][]busanTasteEntry `json:"부산의 맛 2025"`
}

// taxiMenuItem is one recommended dish with its price.
type taxiMenuItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// taxiEntry is one restaurant in the flat 택슐랭 export.
type taxiEntry struct {
	Name            string         `json:"name"`
	Overview        string         `json:"overview"`
	District        string         `json:"district"`
	Address         string         `json:"address"`
	Phone           string         `json:"phoneNumber"`
	Hours           string         `json:"businessHours"`
	Closed          string         `json:"closedDays"`
	RecommendedMenu []taxiMenuItem `json:"recommendedMenu"`
	Reason          string         `json:"recommendationReason"`
}

type taxiRankingFile struct {
	Restaurants []taxiEntry `json:"restaurants"`
}

// LoadRecords reads and normalizes both dataset files. Either path may be
// empty to skip that source.
func LoadRecords(busanTastePath, taxiRankingPath string) ([]Record, error) {
	var records []Record

	if busanTastePath != "" {
		data, err := os.ReadFile(busanTastePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read busan taste data: %w", err)
		}
		var f busanTasteFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse busan taste data: %w", err)
		}
		records = append(records, normalizeBusanTaste(f.Edition)...)
	}

	if taxiRankingPath != "" {
		data, err := os.ReadFile(taxiRankingPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read taxi ranking data: %w", err)
		}
		var f taxiRankingFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxi ranking data: %w", err)
		}
		records = append(records, normalizeTaxiRanking(f.Restaurants)...)
	}

	return records, nil
}

// normalizeBusanTaste flattens the district-keyed entries into records.
func normalizeBusanTaste(byDistrict map[string][]busanTasteEntry) []Record {
	var records []Record
	for district, entries := range byDistrict {
		for _, e := range entries {
			r := Record{
				Name:        string(e.Name),
				Location:    district,
				Address:     e.Address,
				Phone:       e.Phone,
				Description: string(e.Overview),
				Menu:        string(e.Menu),
				Hours:       e.Hours,
				Closed:      e.Closed,
				Source:      SourceBusanTaste,
			}
			r.SearchText = buildSearchText(r, "")
			records = append(records, r)
		}
	}
	return records
}

// normalizeTaxiRanking converts the flat entries, joining the recommended
// menu into a single line.
func normalizeTaxiRanking(entries []taxiEntry) []Record {
	var records []Record
	for _, e := range entries {
		var menuParts []string
		for _, item := range e.RecommendedMenu {
			if item.Name != "" && item.Price != "" {
				menuParts = append(menuParts, item.Name+" "+item.Price)
			}
		}

		r := Record{
			Name:        e.Name,
			Location:    e.District,
			Address:     e.Address,
			Phone:       e.Phone,
			Description: e.Overview,
			Menu:        strings.Join(menuParts, ", "),
			Hours:       e.Hours,
			Closed:      e.Closed,
			Reason:      e.Reason,
			Source:      SourceTaxiRanking,
		}
		r.SearchText = buildSearchText(r, e.Reason)
		records = append(records, r)
	}
	return records
}

func buildSearchText(r Record, reason string) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("맛집 이름", r.Name)
	add("개요", r.Description)
	if r.Source == SourceTaxiRanking {
		add("지역", r.Location)
	}
	add("메뉴", r.Menu)
	add("주소", r.Address)
	add("전화번호", r.Phone)
	add("영업시간", r.Hours)
	add("휴무일", r.Closed)
	add("추천이유", reason)
	return strings.Join(parts, " ")
}

// ChunkText renders a record as the line-labeled block stored in the chunk
// corpus. FromChunk can recover the record skeleton from it.
func (r Record) ChunkText() string {
	var b strings.Builder
	write := func(label, value string) {
		if value != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}
	write("맛집 이름", r.Name)
	write("지역", r.Location)
	write("카테고리", r.Category)
	write("주소", r.Address)
	write("전화번호", r.Phone)
	write("영업시간", r.Hours)
	write("메뉴", r.Menu)
	write("설명", r.Description)
	return strings.TrimSuffix(b.String(), "\n")
}

var plainNamePattern = regexp.MustCompile(`^[가-힣\w\s]+$`)

// categoryHints flag a line as a category mention inside a chunk.
var categoryHints = []string{"한식", "중식", "일식", "양식", "해산물", "고기", "치킨", "피자", "카페"}

// FromChunk recovers a record skeleton from retrieved chunk text. Returns
// nil when no name can be found; such chunks carry nothing presentable.
func FromChunk(chunk string) *Record {
	description := chunk
	if len([]rune(chunk)) > 200 {
		description = string([]rune(chunk)[:200]) + "..."
	}

	r := &Record{
		Description: description,
		Source:      SourceVector,
	}

	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if after, ok := strings.CutPrefix(line, "지역:"); ok {
			r.Location = strings.TrimSpace(after)
			continue
		}
		if after, ok := strings.CutPrefix(line, "맛집 이름:"); ok {
			if name := strings.TrimSpace(after); name != "" && r.Name == "" {
				r.Name = name
			}
			continue
		}
		if after, ok := strings.CutPrefix(line, "식당이름:"); ok {
			if name := strings.TrimSpace(after); name != "" && r.Name == "" {
				r.Name = name
			}
			continue
		}

		if r.Name == "" && plainNamePattern.MatchString(line) {
			if n := len([]rune(line)); n > 2 && n < 50 {
				r.Name = line
			}
		}

		for _, hint := range categoryHints {
			if strings.Contains(line, hint) {
				r.Category = line
				break
			}
		}
	}

	if r.Name == "" {
		return nil
	}
	return r
}
