package errors

import "net/http"

var ErrNotAuthenticated = &Exception{
	Code:       "NOT_AUTHENTICATED",
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}
