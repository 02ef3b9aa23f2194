package validators

import (
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Email == "" {
		return apperrors.Validation("email is required")
	}
	if len(r.Password) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	return nil
}
