package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scorer/internal/breaker"
)

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestService_LazyInitOnce(t *testing.T) {
	stub := &stubEmbedder{}
	builds := 0
	svc := NewService(func(context.Context) (Embedder, error) {
		builds++
		return stub, nil
	}, breaker.Config{}, nil)

	assert.Equal(t, 0, builds)

	for i := 0; i < 3; i++ {
		vectors, err := svc.Embed(context.Background(), []string{"go", "rust"})
		require.NoError(t, err)
		assert.Len(t, vectors, 2)
	}
	assert.Equal(t, 1, builds)
	assert.Equal(t, 3, stub.calls)
	assert.Equal(t, "ok", svc.Status())
}

func TestService_InitFailureIsUnavailable(t *testing.T) {
	builds := 0
	svc := NewService(func(context.Context) (Embedder, error) {
		builds++
		return nil, errors.New("no api key")
	}, breaker.Config{}, nil)

	_, err := svc.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = svc.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, builds)
	assert.Equal(t, "unavailable", svc.Status())
}

func TestService_NilIsUnavailable(t *testing.T) {
	var svc *Service
	_, err := svc.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_BreakerOpensOnFailures(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("quota exceeded")}
	cfg := breaker.DefaultConfig()
	svc := NewService(func(context.Context) (Embedder, error) { return stub, nil }, cfg, nil)

	for i := 0; i < int(cfg.MinRequests); i++ {
		_, err := svc.Embed(context.Background(), []string{"x"})
		require.Error(t, err)
	}
	_, err := svc.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, breaker.ErrOpen)
	assert.Equal(t, int(cfg.MinRequests), stub.calls)
	assert.Equal(t, "degraded", svc.Status())
}
