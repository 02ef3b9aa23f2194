package errors

import "net/http"

var ErrTeamNotFound = &Exception{
	Message:    "team not found or already removed",
	StatusCode: http.StatusNotFound,
}
