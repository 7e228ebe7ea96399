package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tmc/langchaingo/textsplitter"

	"buchat/src/core/corpus"
	"buchat/src/core/restaurant"
	"buchat/src/core/textsplit"
	"buchat/src/gemini"
	"buchat/src/log"
)

const (
	guideChunkSize    = 1000
	guideChunkOverlap = 100

	restaurantChunkSize    = 300
	restaurantChunkOverlap = 30

	embedBatchSize = 32
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build a corpus file from source data",
	Long: `The ingest command chunks source data, embeds every chunk and writes
a corpus file the serve command can load`,
	Run: RunIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().String("kind", "guide", "corpus kind: guide, worker or restaurant")
	ingestCmd.Flags().String("source", "", "source text file for guide and worker corpora")
	ingestCmd.Flags().String("category", "", "metadata category stamped on every document")
	ingestCmd.Flags().String("out", "", "output corpus path, defaults to the configured serving path")
}

type pendingDoc struct {
	text string
	meta map[string]string
}

func RunIngest(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	source, _ := cmd.Flags().GetString("source")
	category, _ := cmd.Flags().GetString("category")
	out, _ := cmd.Flags().GetString("out")

	var (
		pending []pendingDoc
		err     error
	)
	switch kind {
	case "guide", "worker":
		if category == "" {
			category = map[string]string{"guide": "다누리", "worker": "외국인근로자"}[kind]
		}
		if out == "" {
			out = viper.GetString("corpus." + kind + "_path")
		}
		pending, err = collectGuideChunks(source, category)
	case "restaurant":
		if out == "" {
			out = viper.GetString("corpus.restaurant_path")
		}
		pending, err = collectRestaurantChunks()
	default:
		err = fmt.Errorf("unknown corpus kind %q", kind)
	}
	if err != nil {
		log.Error(err, "Failed to collect chunks")
		return
	}
	if len(pending) == 0 {
		log.Error(fmt.Errorf("no chunks produced"), "Nothing to ingest", "kind", kind)
		return
	}
	log.Info("chunks collected", "kind", kind, "count", len(pending))

	timeout, err := time.ParseDuration(viper.GetString("gemini.timeout"))
	if err != nil {
		timeout = 30 * time.Second
	}
	gc := gemini.NewClient(
		viper.GetString("gemini.base_url"),
		viper.GetString("gemini.api_key"),
		viper.GetString("gemini.model"),
		viper.GetString("gemini.embedding_model"),
		&http.Client{Timeout: timeout},
	)

	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Error(err, "Failed to create snowflake node")
		return
	}

	store := corpus.NewStore()
	bar := progressbar.Default(int64(len(pending)), "embedding")
	ctx := context.Background()

	for start := 0; start < len(pending); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.text
		}

		vectors, err := gc.EmbedMany(ctx, texts)
		if err != nil {
			log.Error(err, "Failed to embed batch", "start", start)
			return
		}

		docs := make([]corpus.Document, len(batch))
		for i, p := range batch {
			docs[i] = corpus.Document{
				ID:       node.Generate().String(),
				Text:     p.text,
				Metadata: p.meta,
			}
		}
		if err := store.Append(docs, vectors); err != nil {
			log.Error(err, "Failed to append batch", "start", start)
			return
		}
		bar.Add(len(batch))
	}

	if err := corpus.Save(store, out); err != nil {
		log.Error(err, "Failed to write corpus file", "path", out)
		return
	}
	log.Info("corpus written", "path", out, "documents", store.Len(), "dimension", store.Dimension())
}

// collectGuideChunks splits one extracted-text file into overlapping
// passages.
func collectGuideChunks(source, category string) ([]pendingDoc, error) {
	if source == "" {
		return nil, fmt.Errorf("--source is required for guide and worker corpora")
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(guideChunkSize),
		textsplitter.WithChunkOverlap(guideChunkOverlap),
	)
	chunks, err := splitter.SplitText(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to split source text: %w", err)
	}

	pending := make([]pendingDoc, 0, len(chunks))
	for _, chunk := range chunks {
		pending = append(pending, pendingDoc{
			text: chunk,
			meta: map[string]string{
				corpus.MetaCategory: category,
				corpus.MetaType:     "생활정보",
			},
		})
	}
	return pending, nil
}

// collectRestaurantChunks renders every normalized restaurant record and
// splits the long ones.
func collectRestaurantChunks() ([]pendingDoc, error) {
	records, err := restaurant.LoadRecords(
		viper.GetString("restaurant.busan_taste_path"),
		viper.GetString("restaurant.taxi_ranking_path"),
	)
	if err != nil {
		return nil, err
	}

	splitter := textsplit.NewSplitter(restaurantChunkSize, restaurantChunkOverlap)
	var pending []pendingDoc
	for _, r := range records {
		for _, chunk := range splitter.Split(r.ChunkText()) {
			meta := map[string]string{
				corpus.MetaCategory: "restaurant",
				corpus.MetaType:     "chunk",
			}
			if r.Location != "" {
				meta[corpus.MetaRegion] = r.Location
			}
			pending = append(pending, pendingDoc{text: chunk, meta: meta})
		}
	}
	return pending, nil
}
