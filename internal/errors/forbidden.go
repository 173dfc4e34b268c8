package errors

import "net/http"

var ErrForbidden = &Exception{
	Code:       "FORBIDDEN",
	Message:    "insufficient permissions",
	StatusCode: http.StatusForbidden,
}
