package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/breaker"
)

type stubClient struct {
	calls int
	err   error
	reply string
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *stubClient) GetModel(ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

func TestBreakerClient_PassesThrough(t *testing.T) {
	stub := &stubClient{reply: `{"ok": true}`}
	c := NewBreakerClient(stub, breaker.DefaultConfig(), nil)

	got, err := c.GenerateJSON(context.Background(), "p", TierLite)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, got)
	assert.Equal(t, "stub", c.GetModel(TierLite))
	assert.Equal(t, "closed", c.State())
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	stub := &stubClient{err: errors.New("503")}
	cfg := breaker.DefaultConfig()
	c := NewBreakerClient(stub, cfg, nil)

	for i := 0; i < int(cfg.MinRequests); i++ {
		_, err := c.GenerateContent(context.Background(), "p", TierStandard)
		require.Error(t, err)
	}

	_, err := c.GenerateContent(context.Background(), "p", TierStandard)
	assert.ErrorIs(t, err, breaker.ErrOpen)
	assert.Equal(t, int(cfg.MinRequests), stub.calls)
	assert.Equal(t, "open", c.State())
}
