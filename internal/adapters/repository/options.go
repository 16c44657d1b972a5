// Package repository holds the raw event dataset backing the board.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacity bounds the number of rows a Replace may store.
func WithCapacity(capacity int) Option {
	return func(s *MemoryStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}
