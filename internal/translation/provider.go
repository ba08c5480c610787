package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMissingAPIKey is returned when a provider is used without credentials.
var ErrMissingAPIKey = errors.New("API key not found")

// Result is a fresh translation returned by a provider.
type Result struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Example       string `json:"example"`

	// TargetTranslation is only set when a target language was requested
	// and the provider resolved one.
	TargetTranslation *string `json:"translation_to_target_language,omitempty"`
}

// Provider defines the interface for translation providers
type Provider interface {
	// Translate explains a standalone word or phrase. targetLanguage may be
	// empty.
	Translate(ctx context.Context, word, targetLanguage string) (*Result, error)

	// TranslateInContext explains word as it is used in sentence.
	TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// Config holds configuration for all providers
type Config struct {
	Provider    string // "openai" or "gemini"
	Fallback    string // optional provider used when the primary fails
	Temperature float32

	OpenAIKey     string
	OpenAIOrgID   string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string

	// BreakerMaxFailures consecutive failures open the circuit. Zero
	// disables the breaker.
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:           "openai",
		Temperature:        0.7,
		OpenAIModel:        "gpt-4o-mini",
		GeminiModel:        "gemini-2.0-flash",
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: 30 * time.Second,
	}
}

// NewProvider builds the configured provider, wrapping it in a circuit
// breaker and a fallback when configured.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	primary, err := newNamedProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newNamedProvider(config.Fallback, config)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}

	return NewProviderWithFallback(primary, fallback), nil
}

func newNamedProvider(name string, config *Config) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch name {
	case "openai":
		p = NewOpenAIProvider(config)
	case "gemini":
		p, err = NewGeminiProvider(config)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", name)
	}
	if err != nil {
		return nil, err
	}

	if config.BreakerMaxFailures == 0 {
		return p, nil
	}
	return NewBreakerProvider(p, BreakerSettings{
		MaxFailures: config.BreakerMaxFailures,
		OpenTimeout: config.BreakerOpenTimeout,
	}), nil
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Translate tries the primary provider first and falls back on error
func (p *ProviderWithFallback) Translate(ctx context.Context, word, targetLanguage string) (*Result, error) {
	res, err := p.primary.Translate(ctx, word, targetLanguage)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logFallback(err)
	return p.fallback.Translate(ctx, word, targetLanguage)
}

// TranslateInContext tries the primary provider first and falls back on error
func (p *ProviderWithFallback) TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error) {
	res, err := p.primary.TranslateInContext(ctx, word, sentence, targetLanguage)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logFallback(err)
	return p.fallback.TranslateInContext(ctx, word, sentence, targetLanguage)
}

func (p *ProviderWithFallback) logFallback(err error) {
	slog.Warn("primary provider failed, falling back",
		slog.String("primary", p.primary.Name()),
		slog.String("fallback", p.fallback.Name()),
		slog.Any("error", err))
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
