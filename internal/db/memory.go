package db

import (
	"context"
	"sort"
	"sync"

	"github.com/jonathan/ats-scorer/internal/types"
)

// MemoryStore keeps history for the life of the process. Analyses are stored
// as JSON so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// Save inserts or replaces an analysis.
func (m *MemoryStore) Save(_ context.Context, a *types.Analysis) error {
	row, err := newRecord(a)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[a.ID] = row
	return nil
}

// List returns up to limit summaries, newest first.
func (m *MemoryStore) List(_ context.Context, limit int) ([]types.AnalysisSummary, error) {
	m.mu.RLock()
	out := make([]types.AnalysisSummary, 0, len(m.records))
	for _, row := range m.records {
		out = append(out, row.summary)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Get returns the analysis with id or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id string) (*types.Analysis, error) {
	m.mu.RLock()
	row, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeAnalysis(row.result)
}

// Delete removes the analysis with id or returns ErrNotFound.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}
