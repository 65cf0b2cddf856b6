package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/repository/models"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
)

const localCacheSchema = `
CREATE TABLE IF NOT EXISTS local_stats (
    user_id               TEXT PRIMARY KEY,
    display_name          TEXT NOT NULL DEFAULT '',
    total_xp              INTEGER NOT NULL DEFAULT 0,
    total_quizzes         INTEGER NOT NULL DEFAULT 0,
    total_correct_answers INTEGER NOT NULL DEFAULT 0,
    total_questions       INTEGER NOT NULL DEFAULT 0,
    study_time_minutes    INTEGER NOT NULL DEFAULT 0,
    research_sessions     INTEGER NOT NULL DEFAULT 0,
    streak                INTEGER NOT NULL DEFAULT 0,
    achievements          TEXT NOT NULL DEFAULT '[]',
    last_updated          TIMESTAMP,
    created_at            TIMESTAMP,
    updated_at            TIMESTAMP
);

CREATE TABLE IF NOT EXISTS local_events (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    kind               TEXT NOT NULL,
    occurred_at        TIMESTAMP NOT NULL,
    subject            TEXT,
    difficulty         TEXT,
    question_count     INTEGER NOT NULL DEFAULT 0,
    correct_count      INTEGER NOT NULL DEFAULT 0,
    time_spent_seconds INTEGER NOT NULL DEFAULT 0,
    results_count      INTEGER NOT NULL DEFAULT 0,
    created_at         TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_local_events_user ON local_events (user_id, occurred_at);
`

// sqliteLocalCache is the durable on-device cache backing the state store.
// It mirrors the remote schema closely enough to reuse the row models.
type sqliteLocalCache struct {
	db *sqlx.DB
}

// NewSQLiteLocalCache prepares the cache schema and returns the cache.
func NewSQLiteLocalCache(db *sqlx.DB) (store.LocalCache, error) {
	if _, err := db.Exec(localCacheSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize local cache schema: %w", err)
	}
	return &sqliteLocalCache{db: db}, nil
}

func (c *sqliteLocalCache) LoadStats(ctx context.Context, userID string) (domain.UserStats, error) {
	var row models.UserStats
	query := `SELECT user_id, display_name, total_xp, total_quizzes, total_correct_answers,
	                 total_questions, study_time_minutes, research_sessions, streak,
	                 achievements, last_updated, created_at, updated_at
	          FROM local_stats WHERE user_id = ?`

	err := c.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserStats{}, store.ErrNoLocalState
		}
		return domain.UserStats{}, fmt.Errorf("failed to load cached stats: %w", err)
	}
	return toDomainUserStats(&row), nil
}

func (c *sqliteLocalCache) SaveStats(ctx context.Context, snapshot domain.UserStats) error {
	row := fromDomainUserStats(snapshot)

	query := `INSERT INTO local_stats (user_id, display_name, total_xp, total_quizzes,
	              total_correct_answers, total_questions, study_time_minutes,
	              research_sessions, streak, achievements, last_updated)
	          VALUES (:user_id, :display_name, :total_xp, :total_quizzes,
	              :total_correct_answers, :total_questions, :study_time_minutes,
	              :research_sessions, :streak, :achievements, :last_updated)
	          ON CONFLICT (user_id) DO UPDATE SET
	              display_name = excluded.display_name,
	              total_xp = excluded.total_xp,
	              total_quizzes = excluded.total_quizzes,
	              total_correct_answers = excluded.total_correct_answers,
	              total_questions = excluded.total_questions,
	              study_time_minutes = excluded.study_time_minutes,
	              research_sessions = excluded.research_sessions,
	              streak = excluded.streak,
	              achievements = excluded.achievements,
	              last_updated = excluded.last_updated`

	if _, err := c.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save cached stats: %w", err)
	}
	return nil
}

func (c *sqliteLocalCache) AppendEvent(ctx context.Context, event domain.Event) error {
	row := fromDomainEvent(event)

	query := `INSERT INTO local_events (id, user_id, kind, occurred_at, subject, difficulty,
	              question_count, correct_count, time_spent_seconds, results_count)
	          VALUES (:id, :user_id, :kind, :occurred_at, :subject, :difficulty,
	              :question_count, :correct_count, :time_spent_seconds, :results_count)
	          ON CONFLICT (id) DO NOTHING`

	if _, err := c.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to append cached event: %w", err)
	}
	return nil
}

func (c *sqliteLocalCache) RecentEvents(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []models.Event
	query := `SELECT id, user_id, kind, occurred_at, subject, difficulty,
	                 question_count, correct_count, time_spent_seconds, results_count, created_at
	          FROM local_events WHERE user_id = ?
	          ORDER BY occurred_at DESC, id DESC LIMIT ?`

	if err := c.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to load cached events: %w", err)
	}

	events := make([]domain.Event, len(rows))
	for i := range rows {
		events[len(rows)-1-i] = toDomainEvent(&rows[i])
	}
	return events, nil
}

func (c *sqliteLocalCache) Truncate(ctx context.Context, userID string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM local_events WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to truncate cached events: %w", err)
	}
	if _, err := c.db.ExecContext(ctx, `DELETE FROM local_stats WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to truncate cached stats: %w", err)
	}
	return nil
}
