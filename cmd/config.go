package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for Gemini
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.base_url", "GEMINI_BASE_URL")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.embedding_model", "GEMINI_EMBEDDING_MODEL")
	viper.BindEnv("gemini.timeout", "GEMINI_TIMEOUT")

	// Map environment variables to Viper keys for corpus files and Server
	viper.BindEnv("corpus.guide_path", "CORPUS_GUIDE_PATH")
	viper.BindEnv("corpus.worker_path", "CORPUS_WORKER_PATH")
	viper.BindEnv("corpus.restaurant_path", "CORPUS_RESTAURANT_PATH")
	viper.BindEnv("restaurant.busan_taste_path", "RESTAURANT_BUSAN_TASTE_PATH")
	viper.BindEnv("restaurant.taxi_ranking_path", "RESTAURANT_TAXI_RANKING_PATH")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")
	viper.BindEnv("retrieval.min_score", "RETRIEVAL_MIN_SCORE")

	// Set default values for Gemini
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.embedding_model", "text-embedding-004")
	viper.SetDefault("gemini.timeout", "30s")

	// Set default values for corpus files
	viper.SetDefault("corpus.guide_path", "data/multicultural_guide.json")
	viper.SetDefault("corpus.worker_path", "data/foreign_worker_guide.json")
	viper.SetDefault("corpus.restaurant_path", "data/busan_food_chunks.json")
	viper.SetDefault("restaurant.busan_taste_path", "data/부산의맛.json")
	viper.SetDefault("restaurant.taxi_ranking_path", "data/택슐랭.json")

	// Set default values for the server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// 0 keeps every ranked result
	viper.SetDefault("retrieval.min_score", 0.0)
}
