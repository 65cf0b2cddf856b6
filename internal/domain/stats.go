package domain

import (
	"time"
)

// XPPerLevel is the amount of XP required to advance one level.
const XPPerLevel = 1000

// LevelForXP derives the level for a given XP total. Level is never stored
// independently of this function; a persisted value that diverges is a bug.
func LevelForXP(totalXP int) int {
	return totalXP/XPPerLevel + 1
}

// UserStats is the aggregate snapshot derived by folding the event log.
// There is a single live instance per user, owned by the state store; all
// other components receive copies.
type UserStats struct {
	UserID              string
	DisplayName         string
	TotalXP             int
	TotalQuizzes        int
	TotalCorrectAnswers int
	TotalQuestions      int
	StudyTimeMinutes    int
	ResearchSessions    int
	Streak              int
	Level               int
	Achievements        []string // insertion order preserved for display
	LastUpdated         time.Time
}

// NewUserStats creates an empty snapshot for a user that has no prior
// record: all counters zero, level 1.
func NewUserStats(userID, displayName string) UserStats {
	return UserStats{
		UserID:      userID,
		DisplayName: displayName,
		Level:       1,
	}
}

// Clone returns a deep copy of the snapshot. The achievements slice is
// copied so callers can never alias the store's live state.
func (s UserStats) Clone() UserStats {
	out := s
	if s.Achievements != nil {
		out.Achievements = make([]string, len(s.Achievements))
		copy(out.Achievements, s.Achievements)
	}
	return out
}

// HasAchievement reports whether the achievement id is already unlocked.
func (s UserStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Accuracy returns the lifetime answer accuracy as a percentage.
func (s UserStats) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return 100 * float64(s.TotalCorrectAnswers) / float64(s.TotalQuestions)
}

// Validate checks the aggregate invariants.
func (s UserStats) Validate() error {
	if s.TotalXP < 0 || s.TotalQuizzes < 0 || s.TotalCorrectAnswers < 0 ||
		s.TotalQuestions < 0 || s.StudyTimeMinutes < 0 || s.ResearchSessions < 0 || s.Streak < 0 {
		return NewInvalidInputError("stats counters cannot be negative")
	}
	if s.TotalCorrectAnswers > s.TotalQuestions {
		return NewInvalidInputError("total correct answers cannot exceed total questions")
	}
	if s.Level != LevelForXP(s.TotalXP) {
		return NewInvalidInputError("level is inconsistent with total XP")
	}
	return nil
}
