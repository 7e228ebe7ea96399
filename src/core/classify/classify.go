package classify

import (
	"context"
	"strings"

	"buchat/src/log"
)

// TopicWaste is the canonical topic for household waste questions.
const TopicWaste = "쓰레기배출"

// Result is the classification of one query. Classification over the
// tables alone is pure: the same text always yields the same result.
type Result struct {
	Region       string
	FoodCategory string
	WasteRelated bool
}

// Topic returns the single topic string carried into conversation context,
// empty when the query named neither food nor waste.
func (r Result) Topic() string {
	if r.FoodCategory != "" {
		return r.FoodCategory
	}
	if r.WasteRelated {
		return TopicWaste
	}
	return ""
}

// matchRules returns the canonical value of the first rule whose pattern
// occurs in text. Matching is case-insensitive substring containment.
func matchRules(rules []Rule, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, p := range rule.Patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				return rule.Canonical, true
			}
		}
	}
	return "", false
}

// ClassifyText classifies a query using only the declarative tables.
func ClassifyText(text string) Result {
	var res Result

	if region, ok := matchRules(regionRules, text); ok {
		res.Region = region
	} else if region, ok := matchRules(landmarkRules, text); ok {
		res.Region = region
	}

	lower := strings.ToLower(text)
	for _, kw := range wasteKeywords {
		if strings.Contains(lower, kw) {
			res.WasteRelated = true
			break
		}
	}

	if category, ok := matchRules(foodRules, text); ok {
		res.FoodCategory = category
	}

	return res
}

// RegionResolver maps a free-form place mention to a district when the
// tables cannot. Implementations may call out to a language model.
type RegionResolver interface {
	ResolveRegion(ctx context.Context, query string) (string, error)
}

// Classifier runs the table classification with an optional resolver
// fallback for regions the tables miss.
type Classifier struct {
	resolver RegionResolver
}

type Option func(c *Classifier)

func WithRegionResolver(r RegionResolver) Option {
	return func(c *Classifier) {
		c.resolver = r
	}
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify classifies text, asking the resolver for a region only when the
// tables found none. Resolver failures are logged and treated as no region;
// classification itself never fails.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	res := ClassifyText(text)
	if res.Region != "" || c.resolver == nil {
		return res
	}

	region, err := c.resolver.ResolveRegion(ctx, text)
	if err != nil {
		log.Error(err, "region resolver failed, continuing without region", "query", text)
		return res
	}
	res.Region = region
	return res
}

// ValidDistrict reports whether name is in the Busan district gazetteer.
func ValidDistrict(name string) bool {
	for _, d := range Districts {
		if d == name {
			return true
		}
	}
	return false
}
