package stats

import (
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

// Merge reconciles the local snapshot with one reported by the remote
// store. Monotonic counters take the maximum of the two sides, so a stale
// remote push can never erase progress committed locally before the round
// trip finished. Streak and achievements follow the side with the newer
// LastUpdated. The result is commutative and idempotent: notification
// order does not change the outcome, and applying the same remote snapshot
// twice is a no-op.
func Merge(local, remote domain.UserStats) domain.UserStats {
	merged := local.Clone()

	merged.TotalXP = maxInt(local.TotalXP, remote.TotalXP)
	merged.TotalQuizzes = maxInt(local.TotalQuizzes, remote.TotalQuizzes)
	merged.TotalCorrectAnswers = maxInt(local.TotalCorrectAnswers, remote.TotalCorrectAnswers)
	merged.TotalQuestions = maxInt(local.TotalQuestions, remote.TotalQuestions)
	merged.StudyTimeMinutes = maxInt(local.StudyTimeMinutes, remote.StudyTimeMinutes)
	merged.ResearchSessions = maxInt(local.ResearchSessions, remote.ResearchSessions)

	if remote.LastUpdated.After(local.LastUpdated) {
		merged.Streak = remote.Streak
		merged.Achievements = append([]string(nil), remote.Achievements...)
		merged.LastUpdated = remote.LastUpdated
		if remote.DisplayName != "" {
			merged.DisplayName = remote.DisplayName
		}
	}

	merged.Level = domain.LevelForXP(merged.TotalXP)
	return merged
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
