package errors

import (
	"errors"
	"net/http"
)

// Exception is an application error that knows how it surfaces over HTTP.
// Two exceptions match under errors.Is when their codes are equal, so a
// sentinel still matches after Because or Wrap.
type Exception struct {
	Code       string
	Message    string
	StatusCode int
	cause      error
}

func (e *Exception) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.cause
}

func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Because returns a copy of e carrying a more specific message.
func (e *Exception) Because(message string) *Exception {
	c := *e
	c.Message = message
	return &c
}

// Wrap returns a copy of e recording err as its cause.
func (e *Exception) Wrap(err error) *Exception {
	c := *e
	c.cause = err
	return &c
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
