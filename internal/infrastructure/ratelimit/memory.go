package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	count   int64
	expires time.Time
}

// MemoryStore is an in-memory CounterStore. Counters reset when their window
// passes; a background goroutine drops stale keys.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a new in-memory counter store
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		counters: make(map[string]*counter),
		stop:     make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// cleanup removes expired counters periodically
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for key, c := range s.counters {
				if now.After(c.expires) {
					delete(s.counters, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Incr implements CounterStore
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, exists := s.counters[key]
	if !exists || now.After(c.expires) {
		s.counters[key] = &counter{count: 1, expires: now.Add(window)}
		return 1, nil
	}

	c.count++
	return c.count, nil
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Ensure MemoryStore implements CounterStore
var _ CounterStore = (*MemoryStore)(nil)
