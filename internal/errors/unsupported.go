package errors

import "net/http"

var ErrUnsupported = &Exception{
	Code:       "UNSUPPORTED",
	Message:    "operation is not supported",
	StatusCode: http.StatusNotImplemented,
}
