package services

import (
	"context"
	"fmt"

	"teamtasks.com/teamtasks/internal/constants"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

type TeamService struct {
	teams      *repository.TeamRepository
	tasks      *repository.TaskRepository
	membership *MembershipIndex
	log        *logger.Logger
}

func NewTeamService(
	teams *repository.TeamRepository,
	tasks *repository.TaskRepository,
	membership *MembershipIndex,
	log *logger.Logger,
) *TeamService {
	return &TeamService{
		teams:      teams,
		tasks:      tasks,
		membership: membership,
		log:        log,
	}
}

// TeamWithTasks bundles a team with its task list for the team view.
type TeamWithTasks struct {
	Team  model.Team   `json:"team"`
	Tasks []model.Task `json:"tasks"`
}

func (s *TeamService) CreateTeam(ctx context.Context, name, description string) (*model.Team, error) {
	team, err := s.teams.CreateTeam(ctx, name, description)
	if err != nil {
		return nil, err
	}

	s.log.Info("team created", "team_id", team.ID, "name", team.Name)
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	return s.teams.List(ctx)
}

// TasksOfTeam returns the team and its tasks. Admins may view any
// team; a member must belong to it.
func (s *TeamService) TasksOfTeam(ctx context.Context, caller Identity, teamID string) (*TeamWithTasks, error) {
	switch caller.Role {
	case constants.RoleAdmin:
		// unconditional
	case constants.RoleMember:
		isMember, err := s.membership.IsMember(ctx, caller.UserID, teamID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperrors.ErrTeamForbidden
		}
	default:
		return nil, fmt.Errorf("unknown role %q", caller.Role)
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamWithTasks{Team: *team, Tasks: tasks}, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id, name, description string) error {
	return s.teams.Update(ctx, id, name, description)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("team removed", "team_id", id)
	return nil
}
