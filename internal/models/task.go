package model

import (
	"time"

	"teamtasks.com/teamtasks/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null;uniqueIndex:idx_title_assignee" json:"title"`
	Description string                 `gorm:"not null" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null;default:low" json:"priority"`
	AssignedTo  string                 `gorm:"size:36;not null;uniqueIndex:idx_title_assignee" json:"assigned_to"`
	TeamID      string                 `gorm:"size:36;not null" json:"team_id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// TaskHistory records one status transition. Rows are append-only and
// written in the same transaction as the task update they describe.
type TaskHistory struct {
	ID        string               `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string               `gorm:"size:36;not null;index" json:"task_id"`
	ChangedBy string               `gorm:"size:36;not null" json:"changed_by"`
	OldStatus constants.TaskStatus `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus constants.TaskStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedAt time.Time            `json:"changed_at"`
}
