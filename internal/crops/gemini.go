package crops

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	genai "google.golang.org/genai"

	"github.com/piwi3910/polyhouse/internal/config"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator calls the Gemini API through the official genai client.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator returns a generator for apiKey, or ErrNotConfigured if
// the key is blank.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

func (g *GeminiGenerator) Name() string { return "Gemini:" + g.model }

// Generate sends prompt with the given system instruction and returns the
// first candidate's text.
func (g *GeminiGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// FromConfig builds the service described by cfg. Without an API key the
// service is returned unconfigured rather than failing.
func FromConfig(ctx context.Context, cfg *config.Config) (*Service, error) {
	var gen Generator
	g, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, ErrNotConfigured):
		log.Printf("[CROPS] GEMINI_API_KEY not set, crop suggestions disabled")
	case err != nil:
		return nil, err
	default:
		log.Printf("[CROPS] using %s", g.Name())
		gen = g
	}
	return NewService(gen, cfg.CropCacheSize, cfg.CropTimeoutDuration())
}
