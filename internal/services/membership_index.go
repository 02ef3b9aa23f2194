package services

import (
	"context"

	"teamtasks.com/teamtasks/internal/cache"
	"teamtasks.com/teamtasks/internal/logger"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

// MembershipIndex answers "which teams does user U belong to" and "is
// user U a member of team T". Lookups go through the membership cache
// first; cache failures degrade to a direct table read rather than
// failing the request.
type MembershipIndex struct {
	members *repository.TeamMemberRepository
	cache   cache.MembershipCache
	log     *logger.Logger
}

func NewMembershipIndex(
	members *repository.TeamMemberRepository,
	membershipCache cache.MembershipCache,
	log *logger.Logger,
) *MembershipIndex {
	return &MembershipIndex{
		members: members,
		cache:   membershipCache,
		log:     log,
	}
}

func (m *MembershipIndex) TeamsOf(ctx context.Context, userID string) ([]string, error) {
	teamIDs, found, err := m.cache.GetTeams(ctx, userID)
	if err != nil {
		m.log.Warn("membership cache read failed", "user_id", userID, "error", err)
	} else if found {
		return teamIDs, nil
	}

	teamIDs, err = m.members.TeamIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := m.cache.SetTeams(ctx, userID, teamIDs); err != nil {
		m.log.Warn("membership cache write failed", "user_id", userID, "error", err)
	}

	return teamIDs, nil
}

func (m *MembershipIndex) IsMember(ctx context.Context, userID, teamID string) (bool, error) {
	teamIDs, err := m.TeamsOf(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, id := range teamIDs {
		if id == teamID {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate drops the cached team set for a user. Called whenever a
// membership row is added or removed.
func (m *MembershipIndex) Invalidate(ctx context.Context, userID string) {
	if err := m.cache.Invalidate(ctx, userID); err != nil {
		m.log.Warn("membership cache invalidation failed", "user_id", userID, "error", err)
	}
}
