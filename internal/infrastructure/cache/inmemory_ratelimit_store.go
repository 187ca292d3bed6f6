package cache

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	start time.Time
	count int64
}

// InMemoryRateLimitStore implements RateLimitStore using an in-memory map.
// Counters are per process, so limits are not shared between instances.
type InMemoryRateLimitStore struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	limit     int
	window    time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRateLimitStore creates a store allowing limit requests per window.
// It starts a background goroutine that drops stale counters every two windows.
func NewInMemoryRateLimitStore(limit int, window time.Duration) (*InMemoryRateLimitStore, error) {
	if limit <= 0 || window <= 0 {
		return nil, ErrInvalidRateLimit
	}

	s := &InMemoryRateLimitStore{
		counters: make(map[string]*windowCounter),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s, nil
}

// Take counts one request for key in the current window
func (s *InMemoryRateLimitStore) Take(_ context.Context, key string) (RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := windowStart(s.now(), s.window)
	c, exists := s.counters[key]
	if !exists || !c.start.Equal(start) {
		c = &windowCounter{start: start}
		s.counters[key] = c
	}
	c.count++

	return newResult(c.count, s.limit, start.Add(s.window)), nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryRateLimitStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryRateLimitStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes counters whose window has ended
func (s *InMemoryRateLimitStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := windowStart(s.now(), s.window)
	for key, c := range s.counters {
		if c.start.Before(current) {
			delete(s.counters, key)
		}
	}
}

// Size returns the number of tracked keys
func (s *InMemoryRateLimitStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

var _ RateLimitStore = (*InMemoryRateLimitStore)(nil)
