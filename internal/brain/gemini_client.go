package brain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

type geminiModel struct {
	Name string
	RPM  int
	RPD  int
}

// GeminiBrain is the hosted alternative to the local Ollama backend. It
// walks a fixed model list, skipping models whose free-tier request
// budget for the current minute or day is spent.
type GeminiBrain struct {
	Client *genai.Client
	Models []geminiModel

	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
	mu           sync.Mutex

	log zerolog.Logger
}

func NewGeminiBrain(ctx context.Context, apiKey string, log zerolog.Logger) (*GeminiBrain, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiBrain{
		Client: client,
		Models: []geminiModel{
			{Name: "gemini-2.5-flash", RPM: 10, RPD: 250},
			{Name: "gemini-2.5-flash-lite", RPM: 15, RPD: 1000},
		},
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
		log:          log,
	}, nil
}

var _ ports.Brain = (*GeminiBrain)(nil)

func (b *GeminiBrain) Name() string {
	return "gemini"
}

// Ping is satisfied by having constructed a client; the hosted API has no
// cheap health endpoint worth burning quota on.
func (b *GeminiBrain) Ping(ctx context.Context) error {
	return nil
}

func (b *GeminiBrain) GenerateEngagement(ctx context.Context, title, body string) (domain.Response, error) {
	prompt := fmt.Sprintf(promptTemplate, title, body)

	var lastErr error
	for _, m := range b.Models {
		if !b.canUseModel(m) {
			continue
		}

		result, err := b.Client.Models.GenerateContent(ctx, m.Name, genai.Text(prompt), nil)
		if err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") ||
				strings.Contains(errStr, "exhausted") || strings.Contains(errStr, "not found") {
				lastErr = err
				continue
			}
			return domain.Response{}, err
		}

		if result == nil || len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("empty candidates from %s", m.Name)
			continue
		}

		b.recordUsage(m)
		b.log.Info().Str("model", m.Name).Msg("Using Gemini model")
		return parseEngagement(result.Candidates[0].Content.Parts[0].Text)
	}

	return domain.Response{}, fmt.Errorf("all gemini models failed: %v", lastErr)
}

func (b *GeminiBrain) canUseModel(m geminiModel) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if now.YearDay() != b.lastResetDay.YearDay() {
		b.dailyCount = make(map[string]int)
		b.lastResetDay = now
	}
	if now.Sub(b.lastResetMin) >= time.Minute {
		b.minuteCount = make(map[string]int)
		b.lastResetMin = now
	}
	if b.dailyCount[m.Name] >= m.RPD {
		return false
	}
	if b.minuteCount[m.Name] >= m.RPM {
		return false
	}
	return true
}

func (b *GeminiBrain) recordUsage(m geminiModel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dailyCount[m.Name]++
	b.minuteCount[m.Name]++
}
