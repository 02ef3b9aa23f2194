package model

import (
	"time"

	"teamtasks.com/teamtasks/internal/constants"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      constants.Role `gorm:"type:varchar(10);not null;default:member" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}
