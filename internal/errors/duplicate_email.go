package errors

import "net/http"

var ErrDuplicateEmail = &Exception{
	Message:    "a user with this email already exists",
	StatusCode: http.StatusConflict,
}
