package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/repository/models"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/util"
)

// EventRepository defines persistence for the append-only event log.
type EventRepository interface {
	Append(ctx context.Context, event domain.Event) error
	RecentByUser(ctx context.Context, userID string, limit int) ([]domain.Event, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// sqlxEventRepository implements EventRepository using sqlx.
type sqlxEventRepository struct {
	db *sqlx.DB
}

// NewSQLXEventRepository creates a new instance of sqlxEventRepository.
func NewSQLXEventRepository(db *sqlx.DB) EventRepository {
	return &sqlxEventRepository{db: db}
}

// Append inserts the event. The primary key is the event id, and conflicts
// are ignored, so retrying after a transient failure is idempotent.
func (r *sqlxEventRepository) Append(ctx context.Context, event domain.Event) error {
	row := fromDomainEvent(event)
	row.CreatedAt = time.Now()

	query := `INSERT INTO events (id, user_id, kind, occurred_at, subject, difficulty,
	              question_count, correct_count, time_spent_seconds, results_count, created_at)
	          VALUES (:id, :user_id, :kind, :occurred_at, :subject, :difficulty,
	              :question_count, :correct_count, :time_spent_seconds, :results_count, :created_at)
	          ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// RecentByUser returns up to limit events for the user, oldest first.
func (r *sqlxEventRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := sq.Select("id", "user_id", "kind", "occurred_at", "subject", "difficulty",
		"question_count", "correct_count", "time_spent_seconds", "results_count", "created_at").
		From("events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("occurred_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build events query: %w", err)
	}

	var rows []models.Event
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	// Query is newest-first for the index; callers fold oldest-first.
	events := make([]domain.Event, len(rows))
	for i := range rows {
		events[len(rows)-1-i] = toDomainEvent(&rows[i])
	}
	return events, nil
}

func (r *sqlxEventRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

func toDomainEvent(row *models.Event) domain.Event {
	return domain.Event{
		ID:               row.ID,
		UserID:           row.UserID,
		Kind:             domain.EventKind(row.Kind),
		OccurredAt:       row.OccurredAt,
		Subject:          row.Subject.String,
		Difficulty:       row.Difficulty.String,
		QuestionCount:    row.QuestionCount,
		CorrectCount:     row.CorrectCount,
		TimeSpentSeconds: row.TimeSpentSeconds,
		ResultsCount:     row.ResultsCount,
	}
}

func fromDomainEvent(event domain.Event) *models.Event {
	return &models.Event{
		ID:               event.ID,
		UserID:           event.UserID,
		Kind:             string(event.Kind),
		OccurredAt:       event.OccurredAt,
		Subject:          util.StringToNullString(event.Subject),
		Difficulty:       util.StringToNullString(event.Difficulty),
		QuestionCount:    event.QuestionCount,
		CorrectCount:     event.CorrectCount,
		TimeSpentSeconds: event.TimeSpentSeconds,
		ResultsCount:     event.ResultsCount,
	}
}
