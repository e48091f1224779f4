package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

const (
	DefaultOllamaBaseURL = "http://localhost:11434"

	// preferredModel is picked when the backend offers it; otherwise the
	// first listed model is used.
	preferredModel = "deepseek-r1"

	tagsTimeout     = 5 * time.Second
	generateTimeout = 30 * time.Second
)

const promptTemplate = `Based on the following Reddit post about Kickstarter/crowdfunding/games:

Title: %q
Content: %q

Generate a relevant, conversational comment (30-70 words) that engages with the post's content in a supportive, inquisitive way. The tone should be helpful and community-oriented.

Also, provide a subtle promotional line (15-25 words) about an upcoming card game called "Hand Cricket Showdown" that's inspired by cricket but played with cards. It's a 2-player strategic game that will be coming to Kickstarter soon. Make the promo feel natural and not forced.

Return the response in the format:
Comment: [Your comment here]
Promo: [Your promotional line here]`

// OllamaBrain talks to a local Ollama server over its plain HTTP API.
type OllamaBrain struct {
	BaseURL    string
	HTTPClient *http.Client

	log zerolog.Logger
}

func NewOllamaBrain(baseURL string, log zerolog.Logger) *OllamaBrain {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	return &OllamaBrain{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		log:        log,
	}
}

var _ ports.Brain = (*OllamaBrain)(nil)

func (b *OllamaBrain) Name() string {
	return "ollama"
}

// Ping checks that the server answers the tags endpoint and logs which
// models it offers.
func (b *OllamaBrain) Ping(ctx context.Context) error {
	models, err := b.ListModels(ctx)
	if err != nil {
		return err
	}
	b.log.Info().Strs("models", models).Msg("Ollama is running")
	return nil
}

// ListModels returns the names of the models the server has pulled.
func (b *OllamaBrain) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, tagsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags: status %d", resp.StatusCode)
	}

	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}

	names := make([]string, 0, len(data.Models))
	for _, m := range data.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (b *OllamaBrain) GenerateEngagement(ctx context.Context, title, body string) (domain.Response, error) {
	models, err := b.ListModels(ctx)
	if err != nil {
		return domain.Response{}, err
	}
	model := pickModel(models)
	if model == "" {
		return domain.Response{}, fmt.Errorf("no ollama models available")
	}
	b.log.Info().Str("model", model).Msg("Using Ollama model")

	raw, err := b.generate(ctx, model, fmt.Sprintf(promptTemplate, title, body))
	if err != nil {
		return domain.Response{}, err
	}
	return parseEngagement(raw)
}

func (b *OllamaBrain) generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	payload, _ := json.Marshal(map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"stream": false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/api/generate", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama generate: status %d", resp.StatusCode)
	}

	var data struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(data.Response), nil
}

// pickModel prefers a model whose name starts with preferredModel (tags
// come back as "deepseek-r1:7b" and similar), else takes the first.
func pickModel(models []string) string {
	for _, m := range models {
		if m == preferredModel || strings.HasPrefix(m, preferredModel+":") {
			return m
		}
	}
	if len(models) > 0 {
		return models[0]
	}
	return ""
}
