package validators

import (
	"teamtasks.com/teamtasks/internal/constants"
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
)

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && *r.Title == "" {
		return apperrors.Validation("title must not be empty")
	}
	if r.Description != nil && len(*r.Description) < 10 {
		return apperrors.Validation("description must be at least 10 characters")
	}
	if r.Status != nil {
		if _, err := constants.ParseTaskStatus(*r.Status); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	if r.Priority != nil {
		if _, err := constants.ParseTaskPriority(*r.Priority); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	return nil
}
