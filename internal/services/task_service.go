package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamtasks.com/teamtasks/internal/constants"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

// TaskPatch is a sparse task mutation. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
	Priority    *constants.TaskPriority
}

type TaskService struct {
	db         *gorm.DB
	tasks      *repository.TaskRepository
	history    *repository.TaskHistoryRepository
	users      *repository.UserRepository
	teams      *repository.TeamRepository
	membership *MembershipIndex
	log        *logger.Logger
}

func NewTaskService(
	db *gorm.DB,
	tasks *repository.TaskRepository,
	history *repository.TaskHistoryRepository,
	users *repository.UserRepository,
	teams *repository.TeamRepository,
	membership *MembershipIndex,
	log *logger.Logger,
) *TaskService {
	return &TaskService{
		db:         db,
		tasks:      tasks,
		history:    history,
		users:      users,
		teams:      teams,
		membership: membership,
		log:        log,
	}
}

// CreateTask verifies that the assignee and team exist before the
// insert; a duplicate (title, assignee) pair fails with a conflict.
func (s *TaskService) CreateTask(
	ctx context.Context,
	title, description string,
	status constants.TaskStatus,
	priority constants.TaskPriority,
	assignedTo, teamID string,
) (*model.Task, error) {
	if _, err := s.users.FindByID(ctx, assignedTo); err != nil {
		return nil, err
	}
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}

	task, err := s.tasks.CreateTask(ctx, title, description, status, priority, assignedTo, teamID)
	if err != nil {
		return nil, err
	}

	s.log.Info("task created", "task_id", task.ID, "assigned_to", assignedTo, "team_id", teamID)
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

// AuthorizeAndApply is the state-transition and authorization engine.
// An admin may mutate any task; a member only a task assigned to them.
// When the patch changes the task's status, a history entry recording
// the transition is appended in the same transaction as the update, so
// the two can never be observed partially applied.
func (s *TaskService) AuthorizeAndApply(
	ctx context.Context,
	caller Identity,
	taskID string,
	patch TaskPatch,
) (*model.Task, *model.TaskHistory, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	switch caller.Role {
	case constants.RoleAdmin:
		// unconditional
	case constants.RoleMember:
		if task.AssignedTo != caller.UserID {
			return nil, nil, apperrors.ErrTaskForbidden
		}
	default:
		return nil, nil, fmt.Errorf("unknown role %q", caller.Role)
	}

	oldStatus := task.Status

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}

	statusChanged := patch.Status != nil && *patch.Status != oldStatus

	var entry *model.TaskHistory
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Update(ctx, task); err != nil {
			return err
		}

		if statusChanged {
			entry, err = s.history.WithTx(tx).Append(ctx, task.ID, caller.UserID, oldStatus, task.Status)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if statusChanged {
		s.log.Info("task status changed",
			"task_id", task.ID,
			"old_status", oldStatus,
			"new_status", task.Status,
			"changed_by", caller.UserID,
		)
	}

	return task, entry, nil
}

// DeleteTask removes a task and its history entries together. Deleting
// an id that no longer exists reports not found, distinct from a
// permission failure.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.history.WithTx(tx).DeleteByTask(ctx, id); err != nil {
			return err
		}
		return s.tasks.WithTx(tx).Delete(ctx, id)
	})
}

// ListByStatus applies the visibility filter: admins see every task
// matching the status, members only tasks in teams they belong to. An
// empty result is reported as a not-found error naming the status.
func (s *TaskService) ListByStatus(
	ctx context.Context,
	caller Identity,
	status constants.TaskStatus,
) ([]model.Task, error) {
	teamIDs, err := s.visibleTeams(ctx, caller)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByStatus(ctx, status, teamIDs)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.NoTasksWithStatus(string(status))
	}

	return tasks, nil
}

func (s *TaskService) ListByPriority(
	ctx context.Context,
	caller Identity,
	priority constants.TaskPriority,
) ([]model.Task, error) {
	teamIDs, err := s.visibleTeams(ctx, caller)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByPriority(ctx, priority, teamIDs)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.NoTasksWithPriority(string(priority))
	}

	return tasks, nil
}

// visibleTeams returns nil for admins (no scoping) and the caller's
// team-id set for members.
func (s *TaskService) visibleTeams(ctx context.Context, caller Identity) ([]string, error) {
	if caller.IsAdmin() {
		return nil, nil
	}
	return s.membership.TeamsOf(ctx, caller.UserID)
}

func (s *TaskService) HistoryOf(ctx context.Context, taskID string) ([]model.TaskHistory, error) {
	return s.history.ListByTask(ctx, taskID)
}
