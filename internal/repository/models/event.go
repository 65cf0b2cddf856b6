package models

import (
	"database/sql"
	"time"
)

// Event is the database row for one append-only event log entry.
type Event struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	Kind             string         `db:"kind"`
	OccurredAt       time.Time      `db:"occurred_at"`
	Subject          sql.NullString `db:"subject"`
	Difficulty       sql.NullString `db:"difficulty"`
	QuestionCount    int            `db:"question_count"`
	CorrectCount     int            `db:"correct_count"`
	TimeSpentSeconds int            `db:"time_spent_seconds"`
	ResultsCount     int            `db:"results_count"`
	CreatedAt        time.Time      `db:"created_at"`
}
