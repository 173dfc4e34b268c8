package errors

import "net/http"

var ErrRateLimited = &Exception{
	Code:       "RATE_LIMITED",
	Message:    "rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
