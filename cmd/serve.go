package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	handler "buchat/handler/http"
	"buchat/src/core/assistant"
	"buchat/src/core/classify"
	"buchat/src/core/corpus"
	"buchat/src/core/restaurant"
	"buchat/src/gemini"
	"buchat/src/log"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistant answer server",
	Long:  `The serve command starts an HTTP server that answers guide, worker and restaurant queries`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) {
	log.UseProduction()

	// Initialize Gemini client
	timeout, err := time.ParseDuration(viper.GetString("gemini.timeout"))
	if err != nil {
		log.Error(err, "Invalid gemini timeout, using default 30s")
		timeout = 30 * time.Second
	}
	gc := gemini.NewClient(
		viper.GetString("gemini.base_url"),
		viper.GetString("gemini.api_key"),
		viper.GetString("gemini.model"),
		viper.GetString("gemini.embedding_model"),
		&http.Client{Timeout: timeout},
	)

	// Load corpora
	guideStore, err := corpus.Load(viper.GetString("corpus.guide_path"))
	if err != nil {
		log.Error(err, "Failed to load guide corpus")
		return
	}
	workerStore, err := corpus.Load(viper.GetString("corpus.worker_path"))
	if err != nil {
		log.Error(err, "Failed to load worker corpus")
		return
	}
	log.Info("corpora loaded",
		"guide_docs", guideStore.Len(),
		"worker_docs", workerStore.Len())

	// The restaurant chunk corpus is optional; keyword search covers its
	// absence.
	var restaurantStore *corpus.Store
	if path := viper.GetString("corpus.restaurant_path"); path != "" {
		restaurantStore, err = corpus.Load(path)
		if err != nil {
			log.Error(err, "Failed to load restaurant corpus, keyword search only")
			restaurantStore = nil
		}
	}

	// Restaurant records for keyword search and rendering
	records, err := restaurant.LoadRecords(
		viper.GetString("restaurant.busan_taste_path"),
		viper.GetString("restaurant.taxi_ranking_path"),
	)
	if err != nil {
		log.Error(err, "Failed to load restaurant records")
		return
	}
	log.Info("restaurant records loaded", "count", len(records))

	// Wire the assistants
	resolver := classify.NewLLMRegionResolver(gc)
	classifier := classify.NewClassifier(classify.WithRegionResolver(resolver))
	minScore := float32(viper.GetFloat64("retrieval.min_score"))

	guide := assistant.New(guideStore, gc, classifier, assistant.Config{
		Name:         "guide",
		SystemPrompt: assistant.GuideSystemPrompt,
		MinScore:     minScore,
	})
	worker := assistant.New(workerStore, gc, classifier, assistant.Config{
		Name:         "worker",
		SystemPrompt: assistant.WorkerSystemPrompt,
		MinScore:     minScore,
	})
	searcher := restaurant.NewSearcher(records, restaurantStore, gc, resolver)

	// Initialize HTTP handler
	h := handler.NewHandler(guide, worker, searcher)

	// Setup gin router
	r := gin.Default()
	h.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	shutdownTimeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		shutdownTimeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
