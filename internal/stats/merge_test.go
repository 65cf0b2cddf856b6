package stats

import (
	"testing"
	"time"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_StaleRemoteKeepsLocalProgress(t *testing.T) {
	local := domain.NewUserStats("user1", "Hari")
	local.TotalXP = 500
	local.Level = domain.LevelForXP(local.TotalXP)
	local.LastUpdated = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	remote := domain.NewUserStats("user1", "Hari")
	remote.TotalXP = 300
	remote.Level = domain.LevelForXP(remote.TotalXP)
	remote.LastUpdated = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	merged := Merge(local, remote)

	assert.Equal(t, 500, merged.TotalXP)
	assert.Equal(t, domain.LevelForXP(500), merged.Level)
}

func TestMerge_Commutative(t *testing.T) {
	a := domain.UserStats{
		UserID: "user1", TotalXP: 500, TotalQuizzes: 5, TotalCorrectAnswers: 30,
		TotalQuestions: 50, StudyTimeMinutes: 40, ResearchSessions: 2, Streak: 3,
		Level:       domain.LevelForXP(500),
		LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	b := domain.UserStats{
		UserID: "user1", TotalXP: 620, TotalQuizzes: 4, TotalCorrectAnswers: 35,
		TotalQuestions: 45, StudyTimeMinutes: 55, ResearchSessions: 1, Streak: 1,
		Level:        domain.LevelForXP(620),
		Achievements: []string{"first_steps"},
		LastUpdated:  time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	}

	ab := Merge(a, b)
	ba := Merge(b, a)

	assert.Equal(t, ab.TotalXP, ba.TotalXP)
	assert.Equal(t, ab.TotalQuizzes, ba.TotalQuizzes)
	assert.Equal(t, ab.TotalCorrectAnswers, ba.TotalCorrectAnswers)
	assert.Equal(t, ab.TotalQuestions, ba.TotalQuestions)
	assert.Equal(t, ab.StudyTimeMinutes, ba.StudyTimeMinutes)
	assert.Equal(t, ab.ResearchSessions, ba.ResearchSessions)
	assert.Equal(t, ab.Streak, ba.Streak)
	assert.Equal(t, ab.Achievements, ba.Achievements)
	assert.Equal(t, ab.Level, ba.Level)
}

func TestMerge_Idempotent(t *testing.T) {
	local := domain.UserStats{
		UserID: "user1", TotalXP: 500, TotalQuizzes: 5, Streak: 3,
		Level:       domain.LevelForXP(500),
		LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	remote := domain.UserStats{
		UserID: "user1", TotalXP: 700, TotalQuizzes: 7, Streak: 1,
		Level:        domain.LevelForXP(700),
		Achievements: []string{"first_steps"},
		LastUpdated:  time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	}

	once := Merge(local, remote)
	twice := Merge(once, remote)

	assert.Equal(t, once, twice, "applying the same remote notification twice must have no additional effect")
}

func TestMerge_OrderIndependentAcrossNotifications(t *testing.T) {
	local := domain.UserStats{
		UserID: "user1", TotalXP: 400, TotalQuizzes: 4,
		Level:       domain.LevelForXP(400),
		LastUpdated: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	n1 := domain.UserStats{
		UserID: "user1", TotalXP: 520, TotalQuizzes: 5, Streak: 1,
		Level:       domain.LevelForXP(520),
		LastUpdated: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	n2 := domain.UserStats{
		UserID: "user1", TotalXP: 640, TotalQuizzes: 6, Streak: 2,
		Level:       domain.LevelForXP(640),
		LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	inOrder := Merge(Merge(local, n1), n2)
	reversed := Merge(Merge(local, n2), n1)

	assert.Equal(t, inOrder.TotalXP, reversed.TotalXP)
	assert.Equal(t, inOrder.TotalQuizzes, reversed.TotalQuizzes)
	assert.Equal(t, inOrder.Streak, reversed.Streak)
	assert.Equal(t, inOrder.Level, reversed.Level)
}

func TestMerge_NewerRemoteTakesStreakAndAchievements(t *testing.T) {
	local := domain.UserStats{
		UserID: "user1", TotalXP: 500, Streak: 4,
		Level:        domain.LevelForXP(500),
		Achievements: []string{"first_steps"},
		LastUpdated:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	remote := domain.UserStats{
		UserID: "user1", TotalXP: 480, Streak: 0,
		Level:        domain.LevelForXP(480),
		Achievements: []string{"first_steps", "dedicated"},
		LastUpdated:  time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	merged := Merge(local, remote)

	require.Equal(t, 500, merged.TotalXP, "monotonic counter still takes the max")
	assert.Equal(t, 0, merged.Streak, "newer remote wins the streak")
	assert.Equal(t, []string{"first_steps", "dedicated"}, merged.Achievements)
}
