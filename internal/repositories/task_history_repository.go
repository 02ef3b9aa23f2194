package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamtasks.com/teamtasks/internal/constants"
	model "teamtasks.com/teamtasks/internal/models"
)

// TaskHistoryRepository is the append-only ledger of status
// transitions. Entries are never updated; they are removed only when
// the owning task is removed.
type TaskHistoryRepository struct {
	db *gorm.DB
}

func NewTaskHistoryRepository(db *gorm.DB) *TaskHistoryRepository {
	return &TaskHistoryRepository{db: db}
}

func (r *TaskHistoryRepository) WithTx(tx *gorm.DB) *TaskHistoryRepository {
	return &TaskHistoryRepository{db: tx}
}

func (r *TaskHistoryRepository) Append(
	ctx context.Context,
	taskID, changedBy string,
	oldStatus, newStatus constants.TaskStatus,
) (*model.TaskHistory, error) {
	entry := &model.TaskHistory{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		ChangedBy: changedBy,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *TaskHistoryRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskHistory, error) {
	var entries []model.TaskHistory
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("changed_at asc").
		Find(&entries).Error
	return entries, err
}

func (r *TaskHistoryRepository) DeleteByTask(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).
		Delete(&model.TaskHistory{}, "task_id = ?", taskID).Error
}
