package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned without calling the provider while its circuit
// is open after repeated failures.
var ErrCircuitOpen = errors.New("provider temporarily disabled after repeated failures")

// BreakerSettings configures a BreakerProvider.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// BreakerProvider guards a Provider with a circuit breaker.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next so that MaxFailures consecutive failures
// open the circuit for OpenTimeout.
func NewBreakerProvider(next Provider, settings BreakerSettings) *BreakerProvider {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Cancellation and missing credentials say nothing about the
			// provider's health.
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrMissingAPIKey)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Debug("provider circuit changed state",
				slog.String("provider", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &BreakerProvider{next: next, cb: cb}
}

// Translate calls the wrapped provider unless the circuit is open
func (b *BreakerProvider) Translate(ctx context.Context, word, targetLanguage string) (*Result, error) {
	return b.execute(func() (*Result, error) {
		return b.next.Translate(ctx, word, targetLanguage)
	})
}

// TranslateInContext calls the wrapped provider unless the circuit is open
func (b *BreakerProvider) TranslateInContext(ctx context.Context, word, sentence, targetLanguage string) (*Result, error) {
	return b.execute(func() (*Result, error) {
		return b.next.TranslateInContext(ctx, word, sentence, targetLanguage)
	})
}

func (b *BreakerProvider) execute(call func() (*Result, error)) (*Result, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return call()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", b.next.Name(), ErrCircuitOpen)
	}
	if err != nil {
		return nil, err
	}
	return res.(*Result), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// IsAvailable reports the wrapped provider's availability and whether the
// circuit is open.
func (b *BreakerProvider) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s: %w", b.next.Name(), ErrCircuitOpen)
	}
	return b.next.IsAvailable()
}
