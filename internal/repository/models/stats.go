package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string column as a JSON array string.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// UserStats is the database row for a user's aggregate snapshot. Level is
// intentionally not a column: it is always derived from total_xp on read.
type UserStats struct {
	UserID              string      `db:"user_id"`
	DisplayName         string      `db:"display_name"`
	TotalXP             int         `db:"total_xp"`
	TotalQuizzes        int         `db:"total_quizzes"`
	TotalCorrectAnswers int         `db:"total_correct_answers"`
	TotalQuestions      int         `db:"total_questions"`
	StudyTimeMinutes    int         `db:"study_time_minutes"`
	ResearchSessions    int         `db:"research_sessions"`
	Streak              int         `db:"streak"`
	Achievements        StringSlice `db:"achievements"`
	LastUpdated         time.Time   `db:"last_updated"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
}
