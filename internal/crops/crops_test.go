package crops

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/polyhouse/internal/config"
	"github.com/piwi3910/polyhouse/internal/model"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	system  string
	prompt  string
	timeout bool
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system = system
	f.prompt = prompt
	_, f.timeout = ctx.Deadline()
	return f.reply, f.err
}

func TestSuggest_NotConfigured(t *testing.T) {
	s, err := NewService(nil, 8, 0)
	require.NoError(t, err)
	assert.False(t, s.Configured())

	_, err = s.Suggest(context.Background(), Request{Config: model.DefaultConfig()})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSuggest_UsesGeneratorAndCaches(t *testing.T) {
	gen := &fakeGenerator{reply: "  1. Tomato\n2. Capsicum  "}
	s, err := NewService(gen, 8, time.Minute)
	require.NoError(t, err)

	req := Request{Config: model.DefaultConfig()}
	text, err := s.Suggest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "1. Tomato\n2. Capsicum", text)
	assert.Equal(t, SystemPrompt, gen.system)
	assert.True(t, gen.timeout)

	again, err := s.Suggest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, text, again)
	assert.Equal(t, 1, gen.calls, "second call served from cache")

	req.Config.State = "Kerala"
	_, err = s.Suggest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestSuggest_FillsMissingClimate(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	s, err := NewService(gen, 0, 0)
	require.NoError(t, err)

	cfg := model.DefaultConfig()
	cfg.State = "Rajasthan"
	_, err = s.Suggest(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Climate Zone: Arid")
	assert.Contains(t, gen.prompt, "Avg Temperature: 32°C")
	assert.False(t, gen.timeout)
}

func TestSuggest_Errors(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{err: boom}
	s, err := NewService(gen, 8, 0)
	require.NoError(t, err)

	_, err = s.Suggest(context.Background(), Request{Config: model.DefaultConfig()})
	assert.ErrorIs(t, err, boom)

	_, err = s.Suggest(context.Background(), Request{Config: model.DefaultConfig()})
	require.Error(t, err)
	assert.Equal(t, 2, gen.calls, "failures are not cached")
}

func TestSuggest_EmptyReplyFallsBack(t *testing.T) {
	for _, gen := range []*fakeGenerator{{reply: "   "}, {err: ErrEmptyResponse}} {
		s, err := NewService(gen, 8, 0)
		require.NoError(t, err)
		text, err := s.Suggest(context.Background(), Request{Config: model.DefaultConfig()})
		require.NoError(t, err)
		assert.Equal(t, Fallback, text)
	}
}

func TestBuildPrompt(t *testing.T) {
	cfg := model.DefaultConfig()
	p := BuildPrompt(Request{Config: cfg, Climate: model.ClimateInfo{
		ClimateZone: "Tropical Wet-Dry", AvgTemperature: 27, Humidity: 65, Rainfall: 1200,
	}})

	assert.True(t, strings.HasPrefix(p, "You are an agricultural expert."))
	assert.Contains(t, p, "suggest 5 suitable crops")
	assert.Contains(t, p, "Polyhouse: 30m x 10m, naturally-ventilated type")
	assert.Contains(t, p, "Cover: uv-polyfilm")
	assert.Contains(t, p, "Location: Bangalore Urban, Karnataka")
	assert.Contains(t, p, "Humidity: 65%")
	assert.Contains(t, p, "Annual Rainfall: 1200mm")

	cfg.District = " "
	p = BuildPrompt(Request{Config: cfg})
	assert.Contains(t, p, "Location: Karnataka\n")
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFromConfig_WithoutKeyIsUnconfigured(t *testing.T) {
	svc, err := FromConfig(context.Background(), &config.Config{CropCacheSize: 4, CropTimeout: 5})
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	_, err = svc.Suggest(context.Background(), Request{Config: model.DefaultConfig()})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
