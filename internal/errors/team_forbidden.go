package errors

import "net/http"

var ErrTeamForbidden = &Exception{
	Message:    "you do not have permission to view this team",
	StatusCode: http.StatusForbidden,
}
