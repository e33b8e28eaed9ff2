package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

var _ domain.Generator = (*BreakerGenerator)(nil)

// ErrProviderUnavailable is returned without calling the provider while the
// breaker is open.
var ErrProviderUnavailable = errors.New("ai provider temporarily unavailable")

type BreakerConfig struct {
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
	}
}

// BreakerGenerator stops calling a failing provider until it recovers.
// Cancelled or timed out calls do not count as provider failures.
type BreakerGenerator struct {
	next    domain.Generator
	breaker *gobreaker.CircuitBreaker[*domain.GenerateResponse]
	logger  *slog.Logger
}

func NewBreakerGenerator(next domain.Generator, cfg BreakerConfig, l *slog.Logger) *BreakerGenerator {
	g := &BreakerGenerator{
		next:   next,
		logger: logger.OrDefault(l).With("component", "ai"),
	}

	g.breaker = gobreaker.NewCircuitBreaker[*domain.GenerateResponse](gobreaker.Settings{
		Name:        "generator",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return g
}

func (g *BreakerGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	resp, err := g.breaker.Execute(func() (*domain.GenerateResponse, error) {
		return g.next.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return resp, err
}

// State reports the breaker state for the health endpoint.
func (g *BreakerGenerator) State() string {
	return g.breaker.State().String()
}
