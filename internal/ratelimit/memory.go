package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepThreshold = 10000

type bucket struct {
	count int
	start time.Time
}

// MemoryLimiter keeps windows in process memory. Limits are per replica.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buckets) > sweepThreshold {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) > l.window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}

	if b.count >= l.limit {
		return false, nil
	}

	b.count++
	return true, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.start) > l.window {
			delete(l.buckets, key)
		}
	}
}
