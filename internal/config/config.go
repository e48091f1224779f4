package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sourcing strategy names accepted by SOURCING.
const (
	SourcingRandom = "random"
	SourcingSearch = "search"
)

// Config holds the full application configuration. It is read from the
// environment once at startup and treated as immutable afterwards.
type Config struct {
	// Reddit script-app credentials
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditUserAgent    string

	// LLM backend
	Brain         string // "ollama" or "gemini"
	OllamaBaseURL string
	GeminiAPIKey  string

	// Ledger
	LedgerPath  string
	DatabaseURL string // when set, a Postgres ledger is used instead of the CSV file

	// Operator notifications (optional)
	TelegramBotToken string
	TelegramChatID   string

	// Pipeline
	Sourcing   string
	FetchLimit int
}

// Load reads the configuration from environment variables. Required
// variables that are unset, or still carry the YOUR_ placeholder from a
// template .env, are reported together in a single error.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" || strings.HasPrefix(v, "YOUR_") {
			missing = append(missing, key)
		}
		return v
	}

	cfg.RedditClientID = required("REDDIT_CLIENT_ID")
	cfg.RedditClientSecret = required("REDDIT_CLIENT_SECRET")
	cfg.RedditUsername = required("REDDIT_USERNAME")
	cfg.RedditPassword = required("REDDIT_PASSWORD")

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.RedditUserAgent = getEnvString("REDDIT_USER_AGENT",
		"ViralWhisper/1.0 by u/"+cfg.RedditUsername)

	cfg.Brain = getEnvString("BRAIN", "ollama")
	cfg.OllamaBaseURL = getEnvString("OLLAMA_BASE_URL", "http://localhost:11434")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.Brain != "ollama" && cfg.Brain != "gemini" {
		return nil, fmt.Errorf("BRAIN must be \"ollama\" or \"gemini\", got %q", cfg.Brain)
	}
	if cfg.Brain == "gemini" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("BRAIN=gemini requires GEMINI_API_KEY")
	}

	cfg.LedgerPath = getEnvString("LEDGER_PATH", "reddit_interactions.csv")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.Sourcing = getEnvString("SOURCING", SourcingRandom)
	if cfg.Sourcing != SourcingRandom && cfg.Sourcing != SourcingSearch {
		return nil, fmt.Errorf("SOURCING must be %q or %q, got %q", SourcingRandom, SourcingSearch, cfg.Sourcing)
	}
	cfg.FetchLimit = getEnvInt("FETCH_LIMIT", 5)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
