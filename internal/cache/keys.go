package cache

import "strings"

const (
	GlobalKeyPrefix = "quizlearn"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ChangeChannel returns the pub/sub channel carrying change notifications
// for a user's stats record.
func ChangeChannel(userID string) string {
	return strings.Join([]string{GlobalKeyPrefix, "changes", userID}, ":")
}

// LeaderboardChannel is the pub/sub channel for global ranking changes.
func LeaderboardChannel() string {
	return strings.Join([]string{GlobalKeyPrefix, "changes", "leaderboard"}, ":")
}

// LeaderboardKey is the sorted-set key holding the cached global ranking.
func LeaderboardKey() string {
	return strings.Join([]string{GlobalKeyPrefix, "leaderboard", "xp"}, ":")
}

// LeaderboardInfoKey is the hash key holding entry details for the cached ranking.
func LeaderboardInfoKey() string {
	return strings.Join([]string{GlobalKeyPrefix, "leaderboard", "info"}, ":")
}
