package errors

import "net/http"

var ErrTokenNotFound = &Exception{
	Message:    "bearer token not found",
	StatusCode: http.StatusUnauthorized,
}
