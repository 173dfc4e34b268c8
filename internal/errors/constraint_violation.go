package errors

import "net/http"

var ErrConstraintViolation = &Exception{
	Code:       "CONSTRAINT_VIOLATION",
	Message:    "constraint violation",
	StatusCode: http.StatusConflict,
}
