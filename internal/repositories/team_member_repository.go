package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "teamtasks.com/teamtasks/internal/errors"
	model "teamtasks.com/teamtasks/internal/models"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) CreateMembership(ctx context.Context, userID, teamID string) (*model.TeamMember, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TeamMember{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateTeamMember
	}

	member := &model.TeamMember{
		ID:        uuid.NewString(),
		UserID:    userID,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}

	return member, nil
}

func (r *TeamMemberRepository) FindByID(ctx context.Context, id string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.TeamMember{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTeamMemberNotFound
	}
	return nil
}

func (r *TeamMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at asc").
		Find(&members).Error
	return members, err
}

// TeamMemberWithUser joins a membership row with the member's name for
// the team-members listing.
type TeamMemberWithUser struct {
	model.TeamMember
	UserName string `json:"user_name"`
}

func (r *TeamMemberRepository) ListByTeamWithUsers(ctx context.Context, teamID string) ([]TeamMemberWithUser, error) {
	var members []TeamMemberWithUser
	err := r.db.WithContext(ctx).Model(&model.TeamMember{}).
		Select("team_members.*, users.name AS user_name").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.created_at asc").
		Scan(&members).Error
	return members, err
}

// TeamIDsOf returns every team id the user belongs to. The result is
// never nil, so an empty membership set still scopes queries to zero
// teams rather than disabling scoping.
func (r *TeamMemberRepository) TeamIDsOf(ctx context.Context, userID string) ([]string, error) {
	teamIDs := []string{}
	err := r.db.WithContext(ctx).Model(&model.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, err
	}
	return teamIDs, nil
}

func (r *TeamMemberRepository) IsMember(ctx context.Context, userID, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TeamMember{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
