package cache

import "context"

// MembershipCache holds the set of team ids a user belongs to, keyed by
// user id. GetTeams distinguishes a cached empty set (found=true, empty
// slice) from a miss (found=false). Writers must invalidate a user's
// entry whenever their membership changes.
type MembershipCache interface {
	GetTeams(ctx context.Context, userID string) (teamIDs []string, found bool, err error)

	SetTeams(ctx context.Context, userID string, teamIDs []string) error

	Invalidate(ctx context.Context, userID string) error
}
