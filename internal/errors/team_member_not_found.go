package errors

import "net/http"

var ErrTeamMemberNotFound = &Exception{
	Message:    "team member not found or already removed",
	StatusCode: http.StatusNotFound,
}

var ErrNoTeamMembers = &Exception{
	Message:    "no members found for this team",
	StatusCode: http.StatusNotFound,
}
