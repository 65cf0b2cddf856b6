// Package stats implements the pure aggregation core: folding events into
// a UserStats snapshot and merging snapshots from concurrent sources.
package stats

import (
	"math"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

const (
	// XPPerQuestion is the base XP awarded per question before the score
	// and difficulty factors are applied.
	XPPerQuestion = 10

	// StreakThresholdPercent is the minimum quiz score that extends a
	// streak. Anything below it resets the streak to zero.
	StreakThresholdPercent = 70.0
)

// QuizXP computes the XP awarded for a quiz result.
func QuizXP(questionCount int, scorePercent float64, difficulty string) int {
	raw := float64(questionCount) * XPPerQuestion * (scorePercent / 100) * domain.DifficultyMultiplier(difficulty)
	return int(math.Round(raw))
}

// Fold combines a previous snapshot and one new event into a new snapshot.
// It is pure and deterministic: no I/O, no clock reads, and the inputs are
// never mutated. Deduplication of event ids is the caller's concern.
func Fold(prev domain.UserStats, event domain.Event) (domain.UserStats, error) {
	if err := event.Validate(); err != nil {
		return domain.UserStats{}, err
	}

	next := prev.Clone()
	next.StudyTimeMinutes += int(math.Round(float64(event.TimeSpentSeconds) / 60))
	next.LastUpdated = event.OccurredAt

	switch event.Kind {
	case domain.EventQuizCompleted:
		correct := event.CorrectCount
		if event.QuestionCount == 0 {
			// No questions means no score and nothing to count as correct.
			correct = 0
		}
		scorePercent := event.ScorePercent()

		next.TotalXP += QuizXP(event.QuestionCount, scorePercent, event.Difficulty)
		next.TotalQuizzes++
		next.TotalCorrectAnswers += correct
		next.TotalQuestions += event.QuestionCount
		if scorePercent >= StreakThresholdPercent {
			next.Streak = prev.Streak + 1
		} else {
			next.Streak = 0
		}
		next.Level = domain.LevelForXP(next.TotalXP)

	case domain.EventResearchActivity:
		next.ResearchSessions++
	}

	return next, nil
}

// AwardAchievementXP credits the XP reward for newly earned achievements
// and recomputes the level. Achievement ids are appended in the order
// given, skipping any already present.
func AwardAchievementXP(snapshot domain.UserStats, earned []domain.Achievement) domain.UserStats {
	next := snapshot.Clone()
	for _, a := range earned {
		if next.HasAchievement(a.ID) {
			continue
		}
		next.Achievements = append(next.Achievements, a.ID)
		next.TotalXP += a.XPReward
	}
	next.Level = domain.LevelForXP(next.TotalXP)
	return next
}
