package validators

import (
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateCreateTeamMemberRequest(r *dto.CreateTeamMemberRequest) error {
	if r.UserID == "" {
		return apperrors.Validation("user_id is required")
	}
	if r.TeamID == "" {
		return apperrors.Validation("team_id is required")
	}
	return nil
}
