package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsException reports whether err is a typed application error. Unknown
// storage errors are not, and propagate to the transport layer as 500s.
func IsException(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}

// Validation wraps a malformed-input message in a 400 error.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
