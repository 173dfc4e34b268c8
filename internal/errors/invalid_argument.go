package errors

import "net/http"

var ErrInvalidArgument = &Exception{
	Code:       "INVALID_ARGUMENT",
	Message:    "invalid argument",
	StatusCode: http.StatusBadRequest,
}
