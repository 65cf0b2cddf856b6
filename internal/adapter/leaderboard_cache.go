package adapter

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/cache"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

const leaderboardTTL = 10 * time.Minute

// LeaderboardCache keeps the global XP ranking in Redis.
//
// A sorted set maps userID -> total XP so range queries stay O(log N + M),
// and a companion hash maps userID -> entry JSON for the display fields.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

// UpdateEntry upserts a single user's position. The ZADD and HSET run in one
// pipeline so the set and the hash cannot drift apart.
func (l *LeaderboardCache) UpdateEntry(ctx context.Context, stats domain.UserStats) error {
	entry := domain.LeaderboardEntry{
		UserID:      stats.UserID,
		DisplayName: stats.DisplayName,
		TotalXP:     stats.TotalXP,
		Level:       domain.LevelForXP(stats.TotalXP),
		Streak:      stats.Streak,
		LastUpdated: stats.LastUpdated,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := l.client.Pipeline()
	pipe.ZAdd(ctx, cache.LeaderboardKey(), redis.Z{
		Score:  float64(stats.TotalXP),
		Member: stats.UserID,
	})
	pipe.HSet(ctx, cache.LeaderboardInfoKey(), stats.UserID, data)
	pipe.Expire(ctx, cache.LeaderboardKey(), leaderboardTTL)
	pipe.Expire(ctx, cache.LeaderboardInfoKey(), leaderboardTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Top returns the highest-XP entries. The sorted set breaks equal scores by
// member lexicographic order, so ties are re-sorted on earliest LastUpdated
// to match the database ordering before ranks are assigned. Users missing
// from the info hash are skipped.
func (l *LeaderboardCache) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	userIDs, err := l.client.ZRevRange(ctx, cache.LeaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	raw, err := l.client.HMGet(ctx, cache.LeaderboardInfoKey(), userIDs...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(userIDs))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(str), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalXP != entries[j].TotalXP {
			return entries[i].TotalXP > entries[j].TotalXP
		}
		return entries[i].LastUpdated.Before(entries[j].LastUpdated)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// RemoveEntry drops a user from the ranking, for account resets.
func (l *LeaderboardCache) RemoveEntry(ctx context.Context, userID string) error {
	pipe := l.client.Pipeline()
	pipe.ZRem(ctx, cache.LeaderboardKey(), userID)
	pipe.HDel(ctx, cache.LeaderboardInfoKey(), userID)
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate clears the cached ranking so the next read rebuilds from the database.
func (l *LeaderboardCache) Invalidate(ctx context.Context) error {
	return l.client.Del(ctx, cache.LeaderboardKey(), cache.LeaderboardInfoKey()).Err()
}
