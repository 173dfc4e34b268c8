package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"github.com/sony/gobreaker"
)

// RedisLimiter shares windows across replicas through INCR on a per-window
// key. Redis failures trip a circuit breaker and the limiter fails open
// while it is open.
type RedisLimiter struct {
	client  rueidis.Client
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
	breaker *gobreaker.CircuitBreaker
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "redis-rate-limiter",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, r.now().UnixNano()/int64(r.window))

	res, err := r.breaker.Execute(func() (interface{}, error) {
		count, err := r.client.Do(ctx, r.client.B().Incr().Key(windowKey).Build()).AsInt64()
		if err != nil {
			return nil, err
		}

		if count == 1 {
			ttl := int64(r.window / time.Second)
			if ttl < 1 {
				ttl = 1
			}
			if err := r.client.Do(ctx, r.client.B().Expire().Key(windowKey).Seconds(ttl).Build()).Error(); err != nil {
				return nil, err
			}
		}

		return count, nil
	})
	if err != nil {
		return true, fmt.Errorf("redis rate limiter: %w", err)
	}

	return res.(int64) <= int64(r.limit), nil
}
