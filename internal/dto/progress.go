package dto

import "time"

// StatsResponse is the snapshot of a user's derived progress.
type StatsResponse struct {
	UserID           string    `json:"user_id"`
	DisplayName      string    `json:"display_name"`
	TotalXP          int       `json:"total_xp"`
	Level            int       `json:"level"`
	TotalQuizzes     int       `json:"total_quizzes"`
	TotalCorrect     int       `json:"total_correct_answers"`
	TotalQuestions   int       `json:"total_questions"`
	StudyTimeMinutes int       `json:"study_time_minutes"`
	ResearchSessions int       `json:"research_sessions"`
	Streak           int       `json:"streak"`
	Accuracy         float64   `json:"accuracy"`
	Achievements     []string  `json:"achievements"`
	LastUpdated      time.Time `json:"last_updated"`
}

// SyncStatusResponse reports background persistence health.
type SyncStatusResponse struct {
	Healthy   bool   `json:"healthy"`
	LastError string `json:"last_error,omitempty"`
}

// AchievementResponse is one achievement definition, with earned state.
type AchievementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
	Earned      bool   `json:"earned"`
	Current     int    `json:"current"`
	Target      int    `json:"target"`
}

// EventResponse is one history entry.
type EventResponse struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	OccurredAt       time.Time `json:"occurred_at"`
	Subject          string    `json:"subject,omitempty"`
	Difficulty       string    `json:"difficulty,omitempty"`
	QuestionCount    int       `json:"question_count,omitempty"`
	CorrectCount     int       `json:"correct_count,omitempty"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	ResultsCount     int       `json:"results_count,omitempty"`
}

// HistoryResponse is the recent event window, oldest first.
type HistoryResponse struct {
	Events []EventResponse `json:"events"`
}
