package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns err when set, otherwise a fixed result.
type stubProvider struct {
	name  string
	err   error
	calls int
}

func (s *stubProvider) Translate(ctx context.Context, word, targetLanguage string) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &Result{Word: word, Pronunciation: "p", Meaning: s.name, Example: "e"}, nil
}

func (s *stubProvider) TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error) {
	return s.Translate(ctx, word, targetLanguage)
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) IsAvailable() error { return s.err }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		wantName string
		wantErr  string
	}{
		{
			name:     "default is openai",
			modify:   func(c *Config) {},
			wantName: "openai",
		},
		{
			name:     "gemini",
			modify:   func(c *Config) { c.Provider = "gemini" },
			wantName: "gemini",
		},
		{
			name: "openai with gemini fallback",
			modify: func(c *Config) {
				c.Fallback = "gemini"
			},
			wantName: "openai (fallback: gemini)",
		},
		{
			name: "fallback equal to primary is ignored",
			modify: func(c *Config) {
				c.Fallback = "openai"
			},
			wantName: "openai",
		},
		{
			name:    "unknown provider",
			modify:  func(c *Config) { c.Provider = "deepl" },
			wantErr: "unknown translation provider: deepl",
		},
		{
			name:    "unknown fallback",
			modify:  func(c *Config) { c.Fallback = "deepl" },
			wantErr: "fallback provider: unknown translation provider: deepl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultProviderConfig()
			tt.modify(config)

			p, err := NewProvider(config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProvider_BreakerDisabled(t *testing.T) {
	config := DefaultProviderConfig()
	config.BreakerMaxFailures = 0

	p, err := NewProvider(config)
	require.NoError(t, err)

	_, ok := p.(*OpenAIProvider)
	assert.True(t, ok, "expected bare OpenAI provider, got %T", p)
}

func TestNewProvider_NilConfig(t *testing.T) {
	p, err := NewProvider(nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestProviderWithFallback(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("down")}
	fallback := &stubProvider{name: "fallback"}

	p := NewProviderWithFallback(primary, fallback)

	res, err := p.Translate(context.Background(), "run", "")
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.Meaning)

	res, err = p.TranslateInContext(context.Background(), "run", "I run", "")
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.Meaning)

	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, fallback.calls)
	assert.NoError(t, p.IsAvailable())
}

func TestProviderWithFallback_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary"}
	fallback := &stubProvider{name: "fallback"}

	res, err := NewProviderWithFallback(primary, fallback).Translate(context.Background(), "run", "")
	require.NoError(t, err)

	assert.Equal(t, "primary", res.Meaning)
	assert.Zero(t, fallback.calls)
}

func TestProviderWithFallback_CanceledContextDoesNotFallBack(t *testing.T) {
	primary := &stubProvider{name: "primary", err: context.Canceled}
	fallback := &stubProvider{name: "fallback"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProviderWithFallback(primary, fallback).Translate(ctx, "run", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.calls)
}

func TestProviderWithFallback_BothUnavailable(t *testing.T) {
	p := NewProviderWithFallback(
		&stubProvider{name: "a", err: errors.New("a down")},
		&stubProvider{name: "b", err: errors.New("b down")},
	)

	err := p.IsAvailable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both providers unavailable")
}

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	failing := &stubProvider{name: "flaky", err: errors.New("timeout")}
	b := NewBreakerProvider(failing, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := b.Translate(context.Background(), "run", "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}

	_, err := b.Translate(context.Background(), "run", "")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, failing.calls)
	assert.ErrorIs(t, b.IsAvailable(), ErrCircuitOpen)
}

func TestBreakerProvider_MissingKeyDoesNotTrip(t *testing.T) {
	unconfigured := &stubProvider{name: "openai", err: ErrMissingAPIKey}
	b := NewBreakerProvider(unconfigured, BreakerSettings{MaxFailures: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := b.Translate(context.Background(), "run", "")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	}
	assert.Equal(t, 3, unconfigured.calls)
}

func TestBreakerProvider_PassesResults(t *testing.T) {
	b := NewBreakerProvider(&stubProvider{name: "ok"}, BreakerSettings{MaxFailures: 1})

	res, err := b.TranslateInContext(context.Background(), "bank", "the river bank", "")
	require.NoError(t, err)

	assert.Equal(t, "bank", res.Word)
	assert.Equal(t, "ok", b.Name())
	assert.NoError(t, b.IsAvailable())
}
