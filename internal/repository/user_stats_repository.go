package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/repository/models"
)

// UserStatsRepository defines persistence for the remote stats record.
type UserStatsRepository interface {
	Fetch(ctx context.Context, userID string) (domain.UserStats, error)
	Upsert(ctx context.Context, stats domain.UserStats) error
	Delete(ctx context.Context, userID string) error
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// sqlxUserStatsRepository implements UserStatsRepository using sqlx.
type sqlxUserStatsRepository struct {
	db *sqlx.DB
}

// NewSQLXUserStatsRepository creates a new instance of sqlxUserStatsRepository.
func NewSQLXUserStatsRepository(db *sqlx.DB) UserStatsRepository {
	return &sqlxUserStatsRepository{db: db}
}

func (r *sqlxUserStatsRepository) Fetch(ctx context.Context, userID string) (domain.UserStats, error) {
	var row models.UserStats
	query := `SELECT user_id, display_name, total_xp, total_quizzes, total_correct_answers,
	                 total_questions, study_time_minutes, research_sessions, streak,
	                 achievements, last_updated, created_at, updated_at
	          FROM user_stats WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserStats{}, domain.ErrRemoteNotFound
		}
		return domain.UserStats{}, fmt.Errorf("failed to fetch user stats: %w", err)
	}
	return toDomainUserStats(&row), nil
}

// Upsert merges the snapshot into the stored row instead of overwriting it:
// monotonic counters take the max of both sides and the freshest
// last_updated wins the streak, achievements, and display name, the same
// rule the in-process merge applies. A stale writer (an out-of-order retry,
// or another device carrying an older snapshot) can therefore never regress
// the record, and repeating the statement has no extra effect.
func (r *sqlxUserStatsRepository) Upsert(ctx context.Context, stats domain.UserStats) error {
	row := fromDomainUserStats(stats)
	row.UpdatedAt = time.Now()

	query := `INSERT INTO user_stats (user_id, display_name, total_xp, total_quizzes,
	              total_correct_answers, total_questions, study_time_minutes,
	              research_sessions, streak, achievements, last_updated, created_at, updated_at)
	          VALUES (:user_id, :display_name, :total_xp, :total_quizzes,
	              :total_correct_answers, :total_questions, :study_time_minutes,
	              :research_sessions, :streak, :achievements, :last_updated, :updated_at, :updated_at)
	          ON CONFLICT (user_id) DO UPDATE SET
	              display_name = CASE WHEN EXCLUDED.last_updated >= user_stats.last_updated
	                  THEN EXCLUDED.display_name ELSE user_stats.display_name END,
	              total_xp = GREATEST(user_stats.total_xp, EXCLUDED.total_xp),
	              total_quizzes = GREATEST(user_stats.total_quizzes, EXCLUDED.total_quizzes),
	              total_correct_answers = GREATEST(user_stats.total_correct_answers, EXCLUDED.total_correct_answers),
	              total_questions = GREATEST(user_stats.total_questions, EXCLUDED.total_questions),
	              study_time_minutes = GREATEST(user_stats.study_time_minutes, EXCLUDED.study_time_minutes),
	              research_sessions = GREATEST(user_stats.research_sessions, EXCLUDED.research_sessions),
	              streak = CASE WHEN EXCLUDED.last_updated >= user_stats.last_updated
	                  THEN EXCLUDED.streak ELSE user_stats.streak END,
	              achievements = CASE WHEN EXCLUDED.last_updated >= user_stats.last_updated
	                  THEN EXCLUDED.achievements ELSE user_stats.achievements END,
	              last_updated = GREATEST(user_stats.last_updated, EXCLUDED.last_updated),
	              updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert user stats: %w", err)
	}
	return nil
}

func (r *sqlxUserStatsRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_stats WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user stats: %w", err)
	}
	return nil
}

// Leaderboard returns the global ranking ordered by XP descending, ties
// broken by earliest last_updated.
func (r *sqlxUserStatsRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query, args, err := sq.Select("user_id", "display_name", "total_xp", "streak", "last_updated").
		From("user_stats").
		OrderBy("total_xp DESC", "last_updated ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	type leaderboardRow struct {
		UserID      string    `db:"user_id"`
		DisplayName string    `db:"display_name"`
		TotalXP     int       `db:"total_xp"`
		Streak      int       `db:"streak"`
		LastUpdated time.Time `db:"last_updated"`
	}

	var rows []leaderboardRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			TotalXP:     row.TotalXP,
			Level:       domain.LevelForXP(row.TotalXP),
			Streak:      row.Streak,
			LastUpdated: row.LastUpdated,
		}
	}
	return entries, nil
}

func toDomainUserStats(row *models.UserStats) domain.UserStats {
	return domain.UserStats{
		UserID:              row.UserID,
		DisplayName:         row.DisplayName,
		TotalXP:             row.TotalXP,
		TotalQuizzes:        row.TotalQuizzes,
		TotalCorrectAnswers: row.TotalCorrectAnswers,
		TotalQuestions:      row.TotalQuestions,
		StudyTimeMinutes:    row.StudyTimeMinutes,
		ResearchSessions:    row.ResearchSessions,
		Streak:              row.Streak,
		Level:               domain.LevelForXP(row.TotalXP),
		Achievements:        []string(row.Achievements),
		LastUpdated:         row.LastUpdated,
	}
}

func fromDomainUserStats(stats domain.UserStats) *models.UserStats {
	return &models.UserStats{
		UserID:              stats.UserID,
		DisplayName:         stats.DisplayName,
		TotalXP:             stats.TotalXP,
		TotalQuizzes:        stats.TotalQuizzes,
		TotalCorrectAnswers: stats.TotalCorrectAnswers,
		TotalQuestions:      stats.TotalQuestions,
		StudyTimeMinutes:    stats.StudyTimeMinutes,
		ResearchSessions:    stats.ResearchSessions,
		Streak:              stats.Streak,
		Achievements:        models.StringSlice(stats.Achievements),
		LastUpdated:         stats.LastUpdated,
	}
}
