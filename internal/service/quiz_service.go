package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/achievement"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/util"
)

// QuizService generates quizzes from study material and records completed
// attempts into the progress store.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitQuiz(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

type quizServiceImpl struct {
	generator domain.QuizGenerator
	stores    *store.Manager
}

// NewQuizService creates a new QuizService.
func NewQuizService(generator domain.QuizGenerator, stores *store.Manager) QuizService {
	return &quizServiceImpl{
		generator: generator,
		stores:    stores,
	}
}

func (s *quizServiceImpl) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	difficulty := strings.ToLower(req.Difficulty)

	questions, err := s.generator.GenerateQuiz(ctx, req.Content, req.Topic, difficulty, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	subject := req.Topic
	if subject == "" {
		subject = "pasted material"
	}

	resp := &dto.GenerateQuizResponse{
		Subject:    subject,
		Difficulty: difficulty,
		Questions:  make([]dto.QuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Question:           q.Question,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			Explanation:        q.Explanation,
		})
	}
	return resp, nil
}

// SubmitQuiz folds a completed attempt into the user's progress. XP awarded
// is read as the snapshot delta so achievement rewards unlocked by this
// attempt are included.
func (s *quizServiceImpl) SubmitQuiz(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	st, err := s.stores.Get(userID)
	if err != nil {
		return nil, err
	}

	before := st.Snapshot()
	event := domain.NewQuizEvent(util.NewULID(), userID, req.Subject, req.Difficulty,
		req.QuestionCount, req.CorrectCount, req.TimeSpentSeconds)

	if err := st.RecordEvent(ctx, event); err != nil {
		return nil, err
	}
	after := st.Snapshot()

	earned := make([]dto.AchievementResponse, 0)
	for _, id := range after.Achievements {
		if before.HasAchievement(id) {
			continue
		}
		if def, ok := achievement.ByID(id); ok {
			earned = append(earned, dto.AchievementResponse{
				ID:          def.ID,
				Title:       def.Title,
				Description: def.Description,
				XPReward:    def.XPReward,
				Earned:      true,
			})
		}
	}

	logger.Get().Info("Quiz attempt recorded",
		zap.String("user_id", userID),
		zap.String("event_id", event.ID),
		zap.Float64("score_percent", event.ScorePercent()),
		zap.Int("xp_awarded", after.TotalXP-before.TotalXP))

	return &dto.SubmitQuizResponse{
		EventID:            event.ID,
		XPAwarded:          after.TotalXP - before.TotalXP,
		ScorePercent:       event.ScorePercent(),
		Stats:              toStatsResponse(after),
		EarnedAchievements: earned,
	}, nil
}
