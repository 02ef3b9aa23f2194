package services

import "teamtasks.com/teamtasks/internal/constants"

// Identity is the authenticated caller of an operation. It is resolved
// once at the transport boundary and passed explicitly into every
// service call; services never read the caller from ambient state.
type Identity struct {
	UserID string
	Role   constants.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == constants.RoleAdmin
}
