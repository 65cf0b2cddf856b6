package adapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/cache"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

func leaderboardEntryJSON(t *testing.T, entry domain.LeaderboardEntry) string {
	t.Helper()
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	return string(data)
}

func TestLeaderboardCache_UpdateEntry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	lb := NewLeaderboardCache(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stats := domain.UserStats{
		UserID:      "user1",
		DisplayName: "Hari",
		TotalXP:     1200,
		Streak:      4,
		LastUpdated: now,
	}
	payload := leaderboardEntryJSON(t, domain.LeaderboardEntry{
		UserID:      "user1",
		DisplayName: "Hari",
		TotalXP:     1200,
		Level:       2,
		Streak:      4,
		LastUpdated: now,
	})

	mock.ExpectZAdd(cache.LeaderboardKey(), redis.Z{Score: 1200, Member: "user1"}).SetVal(1)
	mock.ExpectHSet(cache.LeaderboardInfoKey(), "user1", []byte(payload)).SetVal(1)
	mock.ExpectExpire(cache.LeaderboardKey(), leaderboardTTL).SetVal(true)
	mock.ExpectExpire(cache.LeaderboardInfoKey(), leaderboardTTL).SetVal(true)

	err := lb.UpdateEntry(ctx, stats)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardCache_Top(t *testing.T) {
	db, mock := redismock.NewClientMock()
	lb := NewLeaderboardCache(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := leaderboardEntryJSON(t, domain.LeaderboardEntry{
		UserID: "user2", DisplayName: "Asha", TotalXP: 2500, Level: 3, LastUpdated: now,
	})
	second := leaderboardEntryJSON(t, domain.LeaderboardEntry{
		UserID: "user1", DisplayName: "Hari", TotalXP: 1200, Level: 2, LastUpdated: now,
	})

	mock.ExpectZRevRange(cache.LeaderboardKey(), 0, 9).SetVal([]string{"user2", "user1"})
	mock.ExpectHMGet(cache.LeaderboardInfoKey(), "user2", "user1").SetVal([]interface{}{first, second})

	entries, err := lb.Top(ctx, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user2", entries[0].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "user1", entries[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Equal XP must rank by earliest LastUpdated, matching the database
// ordering, even though the sorted set returns ties in member order.
func TestLeaderboardCache_Top_TiesRankByEarliestUpdate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	lb := NewLeaderboardCache(db)
	ctx := context.Background()

	earlier := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	reachedLater := leaderboardEntryJSON(t, domain.LeaderboardEntry{
		UserID: "user1", DisplayName: "Hari", TotalXP: 1200, Level: 2, LastUpdated: later,
	})
	reachedEarlier := leaderboardEntryJSON(t, domain.LeaderboardEntry{
		UserID: "user2", DisplayName: "Asha", TotalXP: 1200, Level: 2, LastUpdated: earlier,
	})

	// The tie comes back in member order, later-achiever first.
	mock.ExpectZRevRange(cache.LeaderboardKey(), 0, 9).SetVal([]string{"user1", "user2"})
	mock.ExpectHMGet(cache.LeaderboardInfoKey(), "user1", "user2").SetVal([]interface{}{reachedLater, reachedEarlier})

	entries, err := lb.Top(ctx, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user2", entries[0].UserID, "first to reach the score ranks first")
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user1", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardCache_Top_Empty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	lb := NewLeaderboardCache(db)

	mock.ExpectZRevRange(cache.LeaderboardKey(), 0, 9).SetVal([]string{})

	entries, err := lb.Top(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardCache_RemoveEntry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	lb := NewLeaderboardCache(db)

	mock.ExpectZRem(cache.LeaderboardKey(), "user1").SetVal(1)
	mock.ExpectHDel(cache.LeaderboardInfoKey(), "user1").SetVal(1)

	err := lb.RemoveEntry(context.Background(), "user1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
