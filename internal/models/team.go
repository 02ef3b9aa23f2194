package model

import "time"

type Team struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamMember is the many-to-many join between users and teams. The
// (UserID, TeamID) pair is unique; its existence is what grants a
// member visibility into the team's tasks.
type TeamMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_team" json:"user_id"`
	TeamID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_team" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}
