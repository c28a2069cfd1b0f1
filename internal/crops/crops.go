// Package crops asks a generative text model for crops suited to a
// polyhouse design and its regional climate.
package crops

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/piwi3910/polyhouse/internal/estimate"
	"github.com/piwi3910/polyhouse/internal/model"
)

// ErrNotConfigured is returned when no generator credential is available.
var ErrNotConfigured = errors.New("GEMINI_API_KEY not configured")

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("crops: empty response from model")

// SystemPrompt frames the model as an agronomist.
const SystemPrompt = "You are an expert agricultural advisor specializing in protected cultivation."

// Fallback is returned in place of an empty suggestion text.
const Fallback = "Unable to generate suggestions"

// Generator produces free text for a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Request is the input of a suggestion call.
type Request struct {
	Config  model.PolyhouseConfig `json:"config"`
	Climate model.ClimateInfo     `json:"climate"`
}

// Service answers suggestion requests, caching answers by prompt.
type Service struct {
	gen     Generator
	cache   *lru.Cache[string, string]
	timeout time.Duration
}

// NewService wraps gen. gen may be nil, in which case every call fails with
// ErrNotConfigured. A cacheSize below one disables caching.
func NewService(gen Generator, cacheSize int, timeout time.Duration) (*Service, error) {
	s := &Service{gen: gen, timeout: timeout}
	if cacheSize > 0 {
		cache, err := lru.New[string, string](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating suggestion cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Configured reports whether a generator is available.
func (s *Service) Configured() bool {
	return s != nil && s.gen != nil
}

// Suggest returns crop suggestions for req. A missing climate profile is
// filled in from the configuration's state.
func (s *Service) Suggest(ctx context.Context, req Request) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	req.Config = req.Config.Normalized()
	if req.Climate.ClimateZone == "" {
		req.Climate = estimate.Climate(req.Config.State)
	}
	prompt := BuildPrompt(req)

	if s.cache != nil {
		if text, ok := s.cache.Get(prompt); ok {
			return text, nil
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, SystemPrompt, prompt)
	if errors.Is(err, ErrEmptyResponse) {
		log.Printf("[CROPS] empty response for %s", req.Config.State)
		return Fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("generating crop suggestions: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Fallback, nil
	}
	if s.cache != nil {
		s.cache.Add(prompt, text)
	}
	return text, nil
}

// BuildPrompt renders the user prompt for req.
func BuildPrompt(req Request) string {
	cfg, cl := req.Config, req.Climate
	location := cfg.State
	if d := strings.TrimSpace(cfg.District); d != "" {
		location = d + ", " + cfg.State
	}

	var b strings.Builder
	b.WriteString("You are an agricultural expert. Based on the following polyhouse configuration and climate data, suggest 5 suitable crops with brief explanations.\n\n")
	fmt.Fprintf(&b, "Polyhouse: %gm x %gm, %s type\n", cfg.Length, cfg.Width, cfg.PolyhouseType)
	fmt.Fprintf(&b, "Roof: %s, eave %gm, ridge %gm\n", cfg.RoofType, cfg.EaveHeight, cfg.RidgeHeight)
	fmt.Fprintf(&b, "Cover: %s\n", cfg.CoverMaterial)
	fmt.Fprintf(&b, "Location: %s\n", location)
	fmt.Fprintf(&b, "Climate Zone: %s\n", cl.ClimateZone)
	fmt.Fprintf(&b, "Avg Temperature: %g°C\n", cl.AvgTemperature)
	fmt.Fprintf(&b, "Humidity: %g%%\n", cl.Humidity)
	fmt.Fprintf(&b, "Annual Rainfall: %gmm\n\n", cl.Rainfall)
	b.WriteString("Provide crop recommendations with expected yield and growing tips. Be concise and practical.")
	return b.String()
}
