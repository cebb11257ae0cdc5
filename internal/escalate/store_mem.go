package escalate

import (
	"context"
	"sync"
	"time"
)

// MemStore is the in-process Store: per-key timestamp slices behind one lock.
// Keys are created lazily on first event and live for the process lifetime.
type MemStore struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		entries: make(map[string][]time.Time),
	}
}

func (s *MemStore) Add(_ context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error) {
	key := storeKey(event, guildID, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := prune(s.entries[key], at, window)
	kept = append(kept, at)
	s.entries[key] = kept
	return len(kept), nil
}

func (s *MemStore) Reset(_ context.Context, event, guildID, userID string) error {
	key := storeKey(event, guildID, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Count is read-only: it counts in-window entries without compacting the
// stored slice. prune is reserved for Add, which writes the result back.
func (s *MemStore) Count(_ context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error) {
	key := storeKey(event, guildID, userID)
	cutoff := at.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, ts := range s.entries[key] {
		if ts.After(cutoff) {
			n++
		}
	}
	return n, nil
}

// prune filters in place; the caller must store the returned slice back.
func prune(stamps []time.Time, at time.Time, window time.Duration) []time.Time {
	cutoff := at.Add(-window)
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
