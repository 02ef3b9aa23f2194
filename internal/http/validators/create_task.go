package validators

import (
	"teamtasks.com/teamtasks/internal/constants"
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return apperrors.Validation("title is required")
	}
	if r.Description == "" {
		return apperrors.Validation("description is required")
	}
	if r.UserID == "" {
		return apperrors.Validation("user_id is required")
	}
	if r.TeamID == "" {
		return apperrors.Validation("team_id is required")
	}
	if r.Status != "" {
		if _, err := constants.ParseTaskStatus(r.Status); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	if r.Priority != "" {
		if _, err := constants.ParseTaskPriority(r.Priority); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	return nil
}
