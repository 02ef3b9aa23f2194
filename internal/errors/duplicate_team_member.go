package errors

import "net/http"

var ErrDuplicateTeamMember = &Exception{
	Message:    "this user is already a member of this team",
	StatusCode: http.StatusConflict,
}
