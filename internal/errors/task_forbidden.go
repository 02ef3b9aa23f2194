package errors

import "net/http"

var ErrTaskForbidden = &Exception{
	Message:    "you do not have permission to update this task",
	StatusCode: http.StatusForbidden,
}
