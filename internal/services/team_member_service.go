package services

import (
	"context"

	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

type TeamMemberService struct {
	members    *repository.TeamMemberRepository
	users      *repository.UserRepository
	teams      *repository.TeamRepository
	membership *MembershipIndex
	log        *logger.Logger
}

func NewTeamMemberService(
	members *repository.TeamMemberRepository,
	users *repository.UserRepository,
	teams *repository.TeamRepository,
	membership *MembershipIndex,
	log *logger.Logger,
) *TeamMemberService {
	return &TeamMemberService{
		members:    members,
		users:      users,
		teams:      teams,
		membership: membership,
		log:        log,
	}
}

// AddMember joins a user to a team. Both sides must exist; the pair
// must not already be joined. The user's cached team set is dropped so
// the new membership is visible immediately.
func (s *TeamMemberService) AddMember(ctx context.Context, userID, teamID string) (*model.TeamMember, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}

	member, err := s.members.CreateMembership(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	s.membership.Invalidate(ctx, userID)
	s.log.Info("team member added", "user_id", userID, "team_id", teamID)
	return member, nil
}

func (s *TeamMemberService) MembersOfTeam(ctx context.Context, teamID string) ([]repository.TeamMemberWithUser, error) {
	members, err := s.members.ListByTeamWithUsers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, apperrors.ErrNoTeamMembers
	}
	return members, nil
}

func (s *TeamMemberService) RemoveMember(ctx context.Context, membershipID string) error {
	member, err := s.members.FindByID(ctx, membershipID)
	if err != nil {
		return err
	}

	if err := s.members.Delete(ctx, membershipID); err != nil {
		return err
	}

	s.membership.Invalidate(ctx, member.UserID)
	s.log.Info("team member removed", "user_id", member.UserID, "team_id", member.TeamID)
	return nil
}
