package assistant

import (
	"context"
	"strings"

	"buchat/src/core/classify"
	"buchat/src/core/corpus"
	"buchat/src/log"
)

// DefaultTopK is how many documents back a composed answer.
const DefaultTopK = 3

// Config selects the corpus flavor an assistant serves.
type Config struct {
	Name         string
	SystemPrompt string
	TopK         int
	MinScore     float32
}

// Assistant answers questions over one guide corpus: classify, merge the
// conversation context, embed, rank, compose. Retrieval failures fall back
// to metadata filtering and finally to a direct completion.
type Assistant struct {
	cfg        Config
	store      *corpus.Store
	ranker     *corpus.Ranker
	classifier *classify.Classifier
	provider   Provider
	composer   *Composer
}

func New(store *corpus.Store, provider Provider, classifier *classify.Classifier, cfg Config, opts ...ComposerOption) *Assistant {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Assistant{
		cfg:        cfg,
		store:      store,
		ranker:     corpus.NewRanker(store, corpus.WithMinScore(cfg.MinScore)),
		classifier: classifier,
		provider:   provider,
		composer:   NewComposer(provider, cfg.SystemPrompt, opts...),
	}
}

// NewGuide builds the multicultural-family living guide assistant.
func NewGuide(store *corpus.Store, provider Provider, classifier *classify.Classifier) *Assistant {
	return New(store, provider, classifier, Config{
		Name:         "guide",
		SystemPrompt: GuideSystemPrompt,
	})
}

// NewWorker builds the foreign-worker rights assistant.
func NewWorker(store *corpus.Store, provider Provider, classifier *classify.Classifier) *Assistant {
	return New(store, provider, classifier, Config{
		Name:         "worker",
		SystemPrompt: WorkerSystemPrompt,
	})
}

// Name returns the assistant's route name.
func (a *Assistant) Name() string {
	return a.cfg.Name
}

// Answer runs one serving call. conv may be nil for a context-free turn.
// The returned answer is always non-empty.
func (a *Assistant) Answer(ctx context.Context, query, targetLang string, conv *classify.Context) Answer {
	if conv == nil {
		conv = &classify.Context{}
	}

	res := a.classifier.Classify(ctx, query)
	region, topic := conv.Merge(res)

	search := buildSearchQuery(query, region, topic)
	log.Debug("answering query", "assistant", a.cfg.Name, "query", query, "search", search,
		"region", region, "topic", topic)

	docs := a.retrieve(ctx, search, region, topic)
	return a.composer.Compose(ctx, query, docs, targetLang)
}

// buildSearchQuery appends the merged region and topic so follow-up turns
// embed with the full conversational intent.
func buildSearchQuery(query, region, topic string) string {
	var b strings.Builder
	b.WriteString(query)
	if region != "" && !strings.Contains(query, region) {
		b.WriteString(" ")
		b.WriteString(region)
	}
	switch {
	case topic == classify.TopicWaste:
		b.WriteString(" 쓰레기 배출 방법")
	case topic != "" && !strings.Contains(query, topic):
		b.WriteString(" ")
		b.WriteString(topic)
	}
	return b.String()
}

func (a *Assistant) retrieve(ctx context.Context, search, region, topic string) []corpus.Document {
	vec, err := a.provider.EmbedOne(ctx, search)
	if err != nil {
		log.Error(err, "embedding failed, using metadata retrieval", "assistant", a.cfg.Name)
		return a.metadataRetrieve(region, topic)
	}

	matches, err := a.ranker.TopK(vec, a.cfg.TopK)
	if err != nil {
		log.Error(err, "similarity ranking failed, using metadata retrieval", "assistant", a.cfg.Name)
		return a.metadataRetrieve(region, topic)
	}

	docs := make([]corpus.Document, len(matches))
	for i, m := range matches {
		docs[i] = m.Document
	}
	return docs
}

// metadataRetrieve is the degraded path: pick documents whose region
// metadata or text matches what the conversation established. An empty
// result pushes composition to a direct completion.
func (a *Assistant) metadataRetrieve(region, topic string) []corpus.Document {
	if region == "" && topic == "" {
		return nil
	}

	needle := topic
	if topic == classify.TopicWaste {
		needle = "쓰레기"
	}

	var out []corpus.Document
	for _, doc := range a.store.All() {
		if len(out) == a.cfg.TopK {
			break
		}
		if region != "" && doc.Metadata[corpus.MetaRegion] == region {
			out = append(out, doc)
			continue
		}
		if needle != "" && strings.Contains(doc.Text, needle) {
			out = append(out, doc)
		}
	}
	return out
}
