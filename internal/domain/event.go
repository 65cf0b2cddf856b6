package domain

import (
	"strings"
	"time"
)

// EventKind identifies the type of learning activity an Event records.
type EventKind string

const (
	EventQuizCompleted    EventKind = "quiz_completed"
	EventResearchActivity EventKind = "research_activity"
)

// Difficulty levels for quiz events.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DifficultyMultiplier returns the XP multiplier for a difficulty label.
// Unknown labels fall back to the easy multiplier.
func DifficultyMultiplier(difficulty string) float64 {
	switch strings.ToLower(difficulty) {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}

// Event is an immutable record of a completed quiz attempt or research
// activity. Events are append-only: corrections are made by appending a
// new Event, never by editing history.
type Event struct {
	ID               string
	UserID           string
	Kind             EventKind
	OccurredAt       time.Time
	Subject          string
	Difficulty       string // quiz events only
	QuestionCount    int    // quiz events only
	CorrectCount     int    // quiz events only
	TimeSpentSeconds int
	ResultsCount     int // research events only
}

// NewQuizEvent creates a QuizCompleted event.
func NewQuizEvent(id, userID, subject, difficulty string, questionCount, correctCount, timeSpentSeconds int) Event {
	return Event{
		ID:               id,
		UserID:           userID,
		Kind:             EventQuizCompleted,
		OccurredAt:       time.Now(),
		Subject:          subject,
		Difficulty:       strings.ToLower(difficulty),
		QuestionCount:    questionCount,
		CorrectCount:     correctCount,
		TimeSpentSeconds: timeSpentSeconds,
	}
}

// NewResearchEvent creates a ResearchActivity event.
func NewResearchEvent(id, userID, subject string, resultsCount, timeSpentSeconds int) Event {
	return Event{
		ID:               id,
		UserID:           userID,
		Kind:             EventResearchActivity,
		OccurredAt:       time.Now(),
		Subject:          subject,
		ResultsCount:     resultsCount,
		TimeSpentSeconds: timeSpentSeconds,
	}
}

// Validate checks the event against the recording rules. Time cannot flow
// backward, so a negative duration is rejected rather than coerced.
func (e Event) Validate() error {
	if e.ID == "" {
		return NewInvalidEventError("event id is required")
	}
	if e.UserID == "" {
		return NewInvalidEventError("user id is required")
	}
	if e.Kind != EventQuizCompleted && e.Kind != EventResearchActivity {
		return NewInvalidEventError("unknown event kind: " + string(e.Kind))
	}
	if e.TimeSpentSeconds < 0 {
		return NewInvalidEventError("time spent cannot be negative")
	}
	switch e.Kind {
	case EventQuizCompleted:
		if e.QuestionCount < 0 {
			return NewInvalidEventError("question count cannot be negative")
		}
		if e.CorrectCount < 0 {
			return NewInvalidEventError("correct count cannot be negative")
		}
		if e.QuestionCount > 0 && e.CorrectCount > e.QuestionCount {
			return NewInvalidEventError("correct count cannot exceed question count")
		}
	case EventResearchActivity:
		if e.ResultsCount < 0 {
			return NewInvalidEventError("results count cannot be negative")
		}
	}
	return nil
}

// ScorePercent returns the quiz score as a percentage in [0, 100].
// A quiz with no questions scores 0 rather than dividing by zero.
func (e Event) ScorePercent() float64 {
	if e.Kind != EventQuizCompleted || e.QuestionCount == 0 {
		return 0
	}
	return 100 * float64(e.CorrectCount) / float64(e.QuestionCount)
}
