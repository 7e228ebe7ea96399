package classify

import (
	"context"
	"fmt"
	"strings"
)

// CompletionProvider is the slice of the model client the resolver needs.
type CompletionProvider interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

const resolverSystemPrompt = `부산의 장소 이름을 행정구로 변환하는 도우미입니다.
질문에 부산의 장소나 지역이 언급되면 "장소명:구명" 형식으로만 답하세요.
예: "서면:부산진구", "광안리:수영구"
구명은 반드시 부산의 실제 행정구(예: 해운대구, 부산진구, 기장군)여야 합니다.
장소를 찾을 수 없으면 "없음"이라고만 답하세요.`

// LLMRegionResolver asks the model to name the district for a place the
// static tables do not know. The answer is constrained to 장소명:구명 or
// 없음 and validated against the gazetteer before use.
type LLMRegionResolver struct {
	provider CompletionProvider
}

func NewLLMRegionResolver(provider CompletionProvider) *LLMRegionResolver {
	return &LLMRegionResolver{provider: provider}
}

func (r *LLMRegionResolver) ResolveRegion(ctx context.Context, query string) (string, error) {
	answer, err := r.provider.Generate(ctx, resolverSystemPrompt, query)
	if err != nil {
		return "", fmt.Errorf("failed to resolve region: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || answer == "없음" {
		return "", nil
	}

	_, district, found := strings.Cut(answer, ":")
	if !found {
		return "", nil
	}
	district = strings.TrimSpace(district)
	if !ValidDistrict(district) {
		return "", nil
	}
	return district, nil
}
