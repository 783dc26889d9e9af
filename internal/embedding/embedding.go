// Package embedding computes text embeddings and the cosine similarities the
// semantic scorer consumes.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/breaker"
)

// DefaultModel is the Gemini embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ErrUnavailable reports that no embedder could be constructed.
var ErrUnavailable = errors.New("embedding service unavailable")

// Factory builds the underlying embedder on first use.
type Factory func(ctx context.Context) (Embedder, error)

// Service is a lazily initialized, caller-owned embedder. Construction happens
// once; a construction failure leaves the service permanently unavailable.
type Service struct {
	factory Factory
	breaker *breaker.Breaker[[][]float32]
	logger  *zap.Logger

	once     sync.Once
	embedder Embedder
	initErr  error
	failed   atomic.Bool
}

// NewService wraps factory. Calls go through a circuit breaker configured by cfg.
func NewService(factory Factory, cfg breaker.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		factory: factory,
		breaker: breaker.New[[][]float32]("embedding", cfg, logger),
		logger:  logger,
	}
}

func (s *Service) init(ctx context.Context) error {
	s.once.Do(func() {
		if s.factory == nil {
			s.initErr = ErrUnavailable
			s.failed.Store(true)
			return
		}
		embedder, err := s.factory(ctx)
		if err != nil {
			s.logger.Warn("embedding model failed to initialize", zap.Error(err))
			s.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
			s.failed.Store(true)
			return
		}
		s.embedder = embedder
	})
	return s.initErr
}

// Embed initializes the underlying embedder if needed and embeds texts.
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s == nil {
		return nil, ErrUnavailable
	}
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	vectors, err := s.breaker.Execute(func() ([][]float32, error) {
		return s.embedder.Embed(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

// Status reports "unavailable", "degraded" (breaker not closed) or "ok".
// It does not trigger initialization.
func (s *Service) Status() string {
	if s == nil || s.failed.Load() {
		return "unavailable"
	}
	if !s.breaker.Healthy() {
		return "degraded"
	}
	return "ok"
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero norm
// or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
