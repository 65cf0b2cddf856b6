package service

import (
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
)

func toStatsResponse(stats domain.UserStats) dto.StatsResponse {
	achievements := stats.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return dto.StatsResponse{
		UserID:           stats.UserID,
		DisplayName:      stats.DisplayName,
		TotalXP:          stats.TotalXP,
		Level:            stats.Level,
		TotalQuizzes:     stats.TotalQuizzes,
		TotalCorrect:     stats.TotalCorrectAnswers,
		TotalQuestions:   stats.TotalQuestions,
		StudyTimeMinutes: stats.StudyTimeMinutes,
		ResearchSessions: stats.ResearchSessions,
		Streak:           stats.Streak,
		Accuracy:         stats.Accuracy(),
		Achievements:     achievements,
		LastUpdated:      stats.LastUpdated,
	}
}

func toEventResponse(event domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:               event.ID,
		Kind:             string(event.Kind),
		OccurredAt:       event.OccurredAt,
		Subject:          event.Subject,
		Difficulty:       event.Difficulty,
		QuestionCount:    event.QuestionCount,
		CorrectCount:     event.CorrectCount,
		TimeSpentSeconds: event.TimeSpentSeconds,
		ResultsCount:     event.ResultsCount,
	}
}

func toAchievementResponse(progress domain.AchievementProgress) dto.AchievementResponse {
	return dto.AchievementResponse{
		ID:          progress.Achievement.ID,
		Title:       progress.Achievement.Title,
		Description: progress.Achievement.Description,
		XPReward:    progress.Achievement.XPReward,
		Earned:      progress.Earned,
		Current:     progress.Current,
		Target:      progress.Target,
	}
}
