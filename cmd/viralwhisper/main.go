package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/brain"
	"github.com/sumitscript/ViralWhisper/internal/config"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
	"github.com/sumitscript/ViralWhisper/internal/engage"
	"github.com/sumitscript/ViralWhisper/internal/ledger"
	"github.com/sumitscript/ViralWhisper/internal/sites/reddit"
	"github.com/sumitscript/ViralWhisper/internal/ui/telegram"
)

func main() {
	godotenv.Load()
	fmt.Println("🤖 ViralWhisper starting... Hand Cricket Showdown outreach run")

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	// Preflight: LLM backend must be reachable before any candidate work.
	myBrain, err := buildBrain(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("LLM backend unavailable")
	}
	if err := myBrain.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("brain", myBrain.Name()).Msg("LLM backend is not running")
	}

	// Preflight: platform authentication. Also verifies connectivity.
	site := reddit.NewClient(reddit.Credentials{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		Username:     cfg.RedditUsername,
		Password:     cfg.RedditPassword,
		UserAgent:    cfg.RedditUserAgent,
	}, log)
	if err := site.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("Reddit authentication failed, cannot proceed")
	}

	store, err := buildLedger(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Ledger initialization failed")
	}

	var notifier ports.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier, err = telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram notifier disabled")
			notifier = nil
		} else {
			log.Info().Msg("Telegram notifications enabled")
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	filter := engage.NewFilter(site, log)

	var source engage.CandidateSource
	switch cfg.Sourcing {
	case config.SourcingSearch:
		source = engage.NewSearchSource(site, filter, cfg.FetchLimit, log)
	default:
		source = engage.NewRandomSource(site, filter, cfg.FetchLimit, rng, log)
	}

	runner := engage.NewRunner(
		source,
		engage.NewGenerator(myBrain, rng, log),
		engage.NewPoster(site, nil, log),
		store,
		notifier,
		rng,
		log,
	)

	if err := runner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Run aborted")
	}
	log.Info().Msg("ViralWhisper completed successfully")
}

func buildBrain(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Brain, error) {
	if cfg.Brain == "gemini" {
		return brain.NewGeminiBrain(ctx, cfg.GeminiAPIKey, log)
	}
	return brain.NewOllamaBrain(cfg.OllamaBaseURL, log), nil
}

// buildLedger picks Postgres when a DATABASE_URL is configured and falls
// back to the flat CSV file otherwise.
func buildLedger(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Ledger, error) {
	if cfg.DatabaseURL != "" {
		pg, err := ledger.NewPostgresLedger(ctx, cfg.DatabaseURL)
		if err == nil {
			log.Info().Msg("Ledger: PostgreSQL connected")
			return pg, nil
		}
		log.Warn().Err(err).Msg("PostgreSQL unavailable, falling back to CSV ledger")
	}

	csvLedger, err := ledger.NewCSVLedger(cfg.LedgerPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.LedgerPath).Msg("Ledger: CSV file mode")
	return csvLedger, nil
}
