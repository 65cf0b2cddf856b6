package dto

import "time"

// LeaderboardEntryResponse is one row of the global ranking.
type LeaderboardEntryResponse struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	TotalXP     int       `json:"total_xp"`
	Level       int       `json:"level"`
	Streak      int       `json:"streak"`
	LastUpdated time.Time `json:"last_updated"`
}

// LeaderboardResponse is a page of the global ranking, highest XP first.
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}
