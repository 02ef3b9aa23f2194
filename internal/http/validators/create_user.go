package validators

import (
	"strings"

	"teamtasks.com/teamtasks/internal/constants"
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateCreateUserRequest(r *dto.CreateUserRequest) error {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return apperrors.Validation("name must be at least 2 characters")
	}
	if !strings.Contains(r.Email, "@") {
		return apperrors.Validation("email is invalid")
	}
	if len(r.Password) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	if r.Role != "" {
		if _, err := constants.ParseRole(r.Role); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	return nil
}
