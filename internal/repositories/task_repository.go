package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamtasks.com/teamtasks/internal/constants"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	model "teamtasks.com/teamtasks/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given
// transaction handle.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// CreateTask inserts a new task. The (title, assignedTo) pair must be
// unique; a duplicate fails with a conflict before anything is written.
func (r *TaskRepository) CreateTask(
	ctx context.Context,
	title, description string,
	status constants.TaskStatus,
	priority constants.TaskPriority,
	assignedTo, teamID string,
) (*model.Task, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("title = ? AND assigned_to = ?", title, assignedTo).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateTask
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  assignedTo,
		TeamID:      teamID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"updated_at":  task.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

// ListByStatus returns tasks matching the status. A nil teamIDs slice
// means no team scoping (admin view); otherwise only tasks belonging to
// one of the given teams are returned.
func (r *TaskRepository) ListByStatus(
	ctx context.Context,
	status constants.TaskStatus,
	teamIDs []string,
) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("status = ?", status)
	if teamIDs != nil {
		query = query.Where("team_id IN ?", teamIDs)
	}

	var tasks []model.Task
	err := query.Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByPriority(
	ctx context.Context,
	priority constants.TaskPriority,
	teamIDs []string,
) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("priority = ?", priority)
	if teamIDs != nil {
		query = query.Where("team_id IN ?", teamIDs)
	}

	var tasks []model.Task
	err := query.Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByTeam(ctx context.Context, teamID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at asc").
		Find(&tasks).Error
	return tasks, err
}
