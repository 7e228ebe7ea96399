package assistant

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"buchat/src/core/corpus"
	"buchat/src/log"
)

// DefaultContextBudget caps the characters of retrieved text handed to the
// model. Lowest-ranked documents are dropped first when it overflows.
const DefaultContextBudget = 4000

// Provider is the slice of the model client the composer and assistants
// consume.
type Provider interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, system, prompt string) (string, error)
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Answer is what a serving call returns. Text is never empty.
type Answer struct {
	Text              string
	LowConfidence     bool
	TranslationFailed bool
}

type promptData struct {
	Context string
	Query   string
}

// Composer turns retrieved documents and a query into a final answer.
// Every provider failure degrades to a usable Korean answer here; nothing
// past this boundary sees an error.
type Composer struct {
	provider Provider
	system   string
	budget   int
}

type ComposerOption func(c *Composer)

func WithContextBudget(n int) ComposerOption {
	return func(c *Composer) {
		c.budget = n
	}
}

func NewComposer(provider Provider, system string, opts ...ComposerOption) *Composer {
	c := &Composer{
		provider: provider,
		system:   system,
		budget:   DefaultContextBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose answers the query from the given documents, translating the
// result when targetLang names a language other than Korean.
func (c *Composer) Compose(ctx context.Context, query string, docs []corpus.Document, targetLang string) Answer {
	var answer Answer

	contextText := buildContext(docs, c.budget)
	if contextText == "" {
		answer.LowConfidence = true
		answer.Text = c.generateOrApologize(ctx, LowConfidencePromptTmpl, promptData{Query: query})
	} else {
		text, err := c.generate(ctx, ComposePromptTmpl, promptData{Context: contextText, Query: query})
		if err != nil {
			log.Error(err, "answer generation failed, falling back to retrieved text", "query", query)
			// Extractive fallback: the best document is still a real answer.
			text = truncateRunes(docs[0].Text, c.budget)
		}
		answer.Text = text
	}

	if targetLang != "" && targetLang != "ko" {
		translated, err := c.provider.Translate(ctx, answer.Text, targetLang)
		if err != nil {
			log.Error(err, "translation failed, returning korean answer", "target_lang", targetLang)
			answer.Text = "[번역 오류] " + answer.Text
			answer.TranslationFailed = true
		} else {
			answer.Text = translated
		}
	}

	return answer
}

func (c *Composer) generate(ctx context.Context, tmpl string, data promptData) (string, error) {
	var buf bytes.Buffer
	t := template.Must(template.New("prompt").Parse(tmpl))
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return c.provider.Generate(ctx, c.system, buf.String())
}

func (c *Composer) generateOrApologize(ctx context.Context, tmpl string, data promptData) string {
	text, err := c.generate(ctx, tmpl, data)
	if err != nil {
		log.Error(err, "direct completion failed", "query", data.Query)
		return ApologyAnswer
	}
	return text
}

// buildContext joins document texts in rank order until the budget runs
// out. A first document longer than the whole budget is truncated rather
// than dropped, so retrieval never silently becomes a no-context answer.
func buildContext(docs []corpus.Document, budget int) string {
	var b strings.Builder
	used := 0
	for i, doc := range docs {
		n := len([]rune(doc.Text))
		if used+n > budget {
			if i == 0 {
				b.WriteString(truncateRunes(doc.Text, budget))
			}
			break
		}
		if i > 0 {
			b.WriteString("\n\n")
			used += 2
		}
		b.WriteString(doc.Text)
		used += n
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
