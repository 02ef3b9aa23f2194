package errors

import "net/http"

var ErrDuplicateTask = &Exception{
	Message:    "this task is already assigned to this user",
	StatusCode: http.StatusConflict,
}
