// Package ratelimit implements fixed-window request limits keyed by client.
package ratelimit

import "context"

// Limiter reports whether one more request for key fits in the current
// window. Implementations that fail may still allow the request and return
// the failure for logging.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
