package stats

import (
	"testing"
	"time"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizEvent(id string, questions, correct int, difficulty string, seconds int) domain.Event {
	return domain.Event{
		ID:               id,
		UserID:           "user1",
		Kind:             domain.EventQuizCompleted,
		OccurredAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Subject:          "Mathematics",
		Difficulty:       difficulty,
		QuestionCount:    questions,
		CorrectCount:     correct,
		TimeSpentSeconds: seconds,
	}
}

func TestFold_FirstQuiz(t *testing.T) {
	// scorePercent=80, xp = round(10*10*0.8*1.5) = 120
	prev := domain.NewUserStats("user1", "Hari")
	event := quizEvent("ev1", 10, 8, domain.DifficultyMedium, 300)

	next, err := Fold(prev, event)

	require.NoError(t, err)
	assert.Equal(t, 120, next.TotalXP)
	assert.Equal(t, 1, next.Level)
	assert.Equal(t, 1, next.Streak)
	assert.Equal(t, 1, next.TotalQuizzes)
	assert.Equal(t, 8, next.TotalCorrectAnswers)
	assert.Equal(t, 10, next.TotalQuestions)
	assert.Equal(t, 5, next.StudyTimeMinutes)
}

func TestFold_LowScoreResetsStreak(t *testing.T) {
	prev := domain.NewUserStats("user1", "Hari")
	first, err := Fold(prev, quizEvent("ev1", 10, 8, domain.DifficultyMedium, 300))
	require.NoError(t, err)
	require.Equal(t, 1, first.Streak)

	// scorePercent=40, xp = round(5*10*0.4*1) = 20
	second, err := Fold(first, quizEvent("ev2", 5, 2, domain.DifficultyEasy, 60))

	require.NoError(t, err)
	assert.Equal(t, 140, second.TotalXP)
	assert.Equal(t, 0, second.Streak)
	assert.Equal(t, 2, second.TotalQuizzes)
}

func TestFold_Purity(t *testing.T) {
	prev := domain.NewUserStats("user1", "Hari")
	prev.TotalXP = 450
	prev.Level = domain.LevelForXP(prev.TotalXP)
	prev.Streak = 3
	prev.Achievements = []string{"first_steps"}
	event := quizEvent("ev1", 10, 9, domain.DifficultyHard, 240)

	a, errA := Fold(prev, event)
	b, errB := Fold(prev, event)

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
	// inputs untouched
	assert.Equal(t, 450, prev.TotalXP)
	assert.Equal(t, 3, prev.Streak)
}

func TestFold_MonotonicCounters(t *testing.T) {
	events := []domain.Event{
		quizEvent("ev1", 10, 8, domain.DifficultyMedium, 300),
		quizEvent("ev2", 5, 1, domain.DifficultyEasy, 60),
		{ID: "ev3", UserID: "user1", Kind: domain.EventResearchActivity, OccurredAt: time.Now(), ResultsCount: 4, TimeSpentSeconds: 120},
		quizEvent("ev4", 20, 20, domain.DifficultyHard, 900),
		quizEvent("ev5", 0, 0, domain.DifficultyEasy, 30),
	}

	current := domain.NewUserStats("user1", "Hari")
	for _, event := range events {
		next, err := Fold(current, event)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, next.TotalXP, current.TotalXP)
		assert.GreaterOrEqual(t, next.TotalQuizzes, current.TotalQuizzes)
		assert.GreaterOrEqual(t, next.TotalCorrectAnswers, current.TotalCorrectAnswers)
		assert.GreaterOrEqual(t, next.TotalQuestions, current.TotalQuestions)
		assert.GreaterOrEqual(t, next.StudyTimeMinutes, current.StudyTimeMinutes)
		assert.Equal(t, domain.LevelForXP(next.TotalXP), next.Level)
		assert.LessOrEqual(t, next.TotalCorrectAnswers, next.TotalQuestions)

		current = next
	}
}

func TestFold_StreakIncrementsPerQualifyingQuiz(t *testing.T) {
	current := domain.NewUserStats("user1", "Hari")
	for i := 1; i <= 5; i++ {
		next, err := Fold(current, quizEvent("ev", 10, 7, domain.DifficultyEasy, 60))
		require.NoError(t, err)
		assert.Equal(t, i, next.Streak, "qualifying quiz must increment streak by exactly 1")
		current = next
	}

	next, err := Fold(current, quizEvent("ev", 10, 6, domain.DifficultyEasy, 60))
	require.NoError(t, err)
	assert.Equal(t, 0, next.Streak, "score below threshold must reset the streak")
}

func TestFold_LevelUpAtExactBoundary(t *testing.T) {
	current := domain.NewUserStats("user1", "Hari")
	current.TotalXP = 900
	current.Level = domain.LevelForXP(current.TotalXP)
	require.Equal(t, 1, current.Level)

	// xp = round(10*10*1.0*1) = 100 -> exactly 1000 total
	next, err := Fold(current, quizEvent("ev1", 10, 10, domain.DifficultyEasy, 60))

	require.NoError(t, err)
	assert.Equal(t, 1000, next.TotalXP)
	assert.Equal(t, 2, next.Level)
}

func TestFold_ZeroQuestionQuiz(t *testing.T) {
	prev := domain.NewUserStats("user1", "Hari")
	event := quizEvent("ev1", 0, 0, domain.DifficultyMedium, 45)

	next, err := Fold(prev, event)

	require.NoError(t, err)
	assert.Equal(t, 0, next.TotalXP)
	assert.Equal(t, 0, next.Streak)
	assert.Equal(t, 1, next.TotalQuizzes)
	assert.Equal(t, 0, next.TotalCorrectAnswers)
	assert.Equal(t, 1, next.StudyTimeMinutes)
}

func TestFold_NegativeTimeRejected(t *testing.T) {
	prev := domain.NewUserStats("user1", "Hari")
	event := quizEvent("ev1", 10, 8, domain.DifficultyMedium, -5)

	_, err := Fold(prev, event)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidEvent, domainErr.Code)
}

func TestFold_ResearchActivity(t *testing.T) {
	prev := domain.NewUserStats("user1", "Hari")
	prev.Streak = 2
	event := domain.Event{
		ID:               "ev1",
		UserID:           "user1",
		Kind:             domain.EventResearchActivity,
		OccurredAt:       time.Now(),
		Subject:          "History",
		ResultsCount:     7,
		TimeSpentSeconds: 180,
	}

	next, err := Fold(prev, event)

	require.NoError(t, err)
	assert.Equal(t, 0, next.TotalXP, "research grants no XP")
	assert.Equal(t, 2, next.Streak, "research does not touch the streak")
	assert.Equal(t, 1, next.ResearchSessions)
	assert.Equal(t, 3, next.StudyTimeMinutes)
}

func TestAwardAchievementXP(t *testing.T) {
	snapshot := domain.NewUserStats("user1", "Hari")
	snapshot.TotalXP = 950
	snapshot.Level = domain.LevelForXP(snapshot.TotalXP)
	snapshot.Achievements = []string{"first_steps"}

	earned := []domain.Achievement{
		{ID: "first_steps", XPReward: 50},   // already unlocked, skipped
		{ID: "quiz_master", XPReward: 100},
	}

	next := AwardAchievementXP(snapshot, earned)

	assert.Equal(t, []string{"first_steps", "quiz_master"}, next.Achievements)
	assert.Equal(t, 1050, next.TotalXP)
	assert.Equal(t, 2, next.Level)
}
