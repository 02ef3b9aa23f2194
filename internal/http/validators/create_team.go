package validators

import (
	"strings"

	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateCreateTeamRequest(r *dto.CreateTeamRequest) error {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return apperrors.Validation("name must be at least 2 characters")
	}
	if len(strings.TrimSpace(r.Description)) < 10 {
		return apperrors.Validation("description must be at least 10 characters")
	}
	return nil
}

func ValidateUpdateTeamRequest(r *dto.UpdateTeamRequest) error {
	if r.Name == "" {
		return apperrors.Validation("name is required")
	}
	if len(r.Description) < 10 {
		return apperrors.Validation("description must be at least 10 characters")
	}
	return nil
}
