package errors

import "net/http"

var ErrDuplicateTeam = &Exception{
	Message:    "a team with this name already exists",
	StatusCode: http.StatusConflict,
}
