// Package repository holds the raw event dataset backing the board.
//
// The upstream feed replaces the dataset wholesale on every fetch, so the
// store is a guarded snapshot rather than an incremental index: writers
// swap the full row set, readers copy it out.
package repository

import (
	"context"
	"sync"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// Default store configuration constants.
const defaultCapacity = 500_000

// Store provides replace/read access to the raw event dataset.
type Store interface {
	// Replace swaps the dataset for the given rows and returns the stored
	// row count. Fails only when the row set exceeds capacity.
	Replace(ctx context.Context, rows []model.Raw) (int, error)

	// Snapshot returns a copy of the current dataset.
	Snapshot(ctx context.Context) []model.Raw

	// Count returns the current number of rows.
	Count(ctx context.Context) int
}

// MemoryStore implements Store with a mutex-guarded slice.
type MemoryStore struct {
	mu       sync.RWMutex
	rows     []model.Raw
	capacity int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Replace swaps the dataset wholesale. The incoming slice is copied so the
// caller keeps ownership of its rows.
func (s *MemoryStore) Replace(_ context.Context, rows []model.Raw) (int, error) {
	if len(rows) > s.capacity {
		return 0, ErrCapacityExceeded
	}

	copied := make([]model.Raw, len(rows))
	copy(copied, rows)

	s.mu.Lock()
	s.rows = copied
	s.mu.Unlock()

	return len(copied), nil
}

// Snapshot returns a copy of the current dataset. Rows themselves are
// shared; callers treat them as immutable.
func (s *MemoryStore) Snapshot(_ context.Context) []model.Raw {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Raw, len(s.rows))
	copy(out, s.rows)
	return out
}

// Count returns the current number of rows.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rows)
}
