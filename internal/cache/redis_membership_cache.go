package cache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// sentinelMember marks a key as populated so that an empty membership
// set is still a cache hit. It is never a valid team id.
const sentinelMember = "-"

type RedisMembershipCache struct {
	client    rueidis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisMembershipCache(client rueidis.Client, keyPrefix string, ttl time.Duration) *RedisMembershipCache {
	return &RedisMembershipCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (r *RedisMembershipCache) key(userID string) string {
	return r.keyPrefix + userID
}

func (r *RedisMembershipCache) GetTeams(ctx context.Context, userID string) ([]string, bool, error) {
	cmd := r.client.B().Smembers().Key(r.key(userID)).Build()
	members, err := r.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if len(members) == 0 {
		return nil, false, nil
	}

	teamIDs := make([]string, 0, len(members))
	for _, m := range members {
		if m == sentinelMember {
			continue
		}
		teamIDs = append(teamIDs, m)
	}

	return teamIDs, true, nil
}

func (r *RedisMembershipCache) SetTeams(ctx context.Context, userID string, teamIDs []string) error {
	key := r.key(userID)

	delCmd := r.client.B().Del().Key(key).Build()
	if err := r.client.Do(ctx, delCmd).Error(); err != nil {
		return err
	}

	members := append([]string{sentinelMember}, teamIDs...)
	addCmd := r.client.B().Sadd().Key(key).Member(members...).Build()
	if err := r.client.Do(ctx, addCmd).Error(); err != nil {
		return err
	}

	expCmd := r.client.B().Expire().Key(key).Seconds(int64(r.ttl.Seconds())).Build()
	return r.client.Do(ctx, expCmd).Error()
}

func (r *RedisMembershipCache) Invalidate(ctx context.Context, userID string) error {
	cmd := r.client.B().Del().Key(r.key(userID)).Build()
	return r.client.Do(ctx, cmd).Error()
}
