package errors

import "net/http"

var ErrAdminOnly = &Exception{
	Message:    "this action requires the admin role",
	StatusCode: http.StatusForbidden,
}
