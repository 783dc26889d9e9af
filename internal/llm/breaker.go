package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/breaker"
)

// BreakerClient guards a Client with a circuit breaker so repeated service
// failures short-circuit to the callers' degraded paths.
type BreakerClient struct {
	next Client
	cb   *breaker.Breaker[string]
}

// NewBreakerClient wraps next. A disabled cfg passes calls straight through.
func NewBreakerClient(next Client, cfg breaker.Config, logger *zap.Logger) *BreakerClient {
	return &BreakerClient{next: next, cb: breaker.New[string]("llm", cfg, logger)}
}

// GenerateContent implements Client.
func (b *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON implements Client.
func (b *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.GenerateJSON(ctx, prompt, tier)
	})
}

// GetModel implements Client.
func (b *BreakerClient) GetModel(tier ModelTier) string {
	return b.next.GetModel(tier)
}

// Close implements Client.
func (b *BreakerClient) Close() error {
	return b.next.Close()
}

// State reports the breaker state for health checks.
func (b *BreakerClient) State() string {
	return b.cb.State()
}
