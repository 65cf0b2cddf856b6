// Package achievement holds the static achievement catalog and the pure
// evaluator that maps aggregate stats (and event-log facts) to newly
// unlocked achievements.
package achievement

import (
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

// Definition is one catalog entry: the user-facing achievement plus the
// predicate deciding whether it is earned. Progress, when set, reports a
// numerator/denominator pair for partially-complete achievements.
type Definition struct {
	domain.Achievement
	Predicate func(stats domain.UserStats, events []domain.Event) bool
	Progress  func(stats domain.UserStats) (current, target int)
}

// Catalog is the static achievement set, in declaration order. Evaluation
// results follow this order so repeated runs are reproducible.
var Catalog = []Definition{
	{
		Achievement: domain.Achievement{
			ID:          "first_steps",
			Title:       "First Steps",
			Description: "Complete your first quiz",
			XPReward:    50,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.TotalQuizzes >= 1
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.TotalQuizzes, 1)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "quiz_master",
			Title:       "Quiz Master",
			Description: "Complete 10 quizzes",
			XPReward:    100,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.TotalQuizzes >= 10
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.TotalQuizzes, 10)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "perfect_score",
			Title:       "Perfectionist",
			Description: "Score 100% on a quiz",
			XPReward:    150,
		},
		Predicate: func(_ domain.UserStats, events []domain.Event) bool {
			for _, e := range events {
				if e.Kind == domain.EventQuizCompleted && e.QuestionCount > 0 &&
					e.CorrectCount == e.QuestionCount {
					return true
				}
			}
			return false
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "on_fire",
			Title:       "On Fire",
			Description: "Reach a streak of 5 qualifying quizzes",
			XPReward:    200,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.Streak >= 5
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.Streak, 5)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "scholar",
			Title:       "Scholar",
			Description: "Accumulate one hour of study time",
			XPReward:    100,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.StudyTimeMinutes >= 60
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.StudyTimeMinutes, 60)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "researcher",
			Title:       "Researcher",
			Description: "Run 5 smart research sessions",
			XPReward:    100,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.ResearchSessions >= 5
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.ResearchSessions, 5)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "rising_star",
			Title:       "Rising Star",
			Description: "Reach level 5",
			XPReward:    250,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.Level >= 5
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.Level, 5)
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "sharpshooter",
			Title:       "Sharpshooter",
			Description: "Hold 90% lifetime accuracy over at least 50 questions",
			XPReward:    300,
		},
		Predicate: func(s domain.UserStats, _ []domain.Event) bool {
			return s.TotalQuestions >= 50 && s.Accuracy() >= 90
		},
		Progress: func(s domain.UserStats) (int, int) {
			return clampProgress(s.TotalQuestions, 50)
		},
	},
}

func clampProgress(current, target int) (int, int) {
	if current > target {
		current = target
	}
	return current, target
}
