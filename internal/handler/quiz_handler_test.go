package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/handler"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/middleware"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SubmitQuizFunc   func(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}

func newTestApp(quizService *MockQuizService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})

	// Stand-in for the auth middleware: inject a fixed identity.
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	})

	h := handler.NewQuizHandler(quizService)
	app.Post("/api/quiz/generate", h.GenerateQuiz)
	app.Post("/api/quiz/submit", h.SubmitQuiz)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, string) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(respBody)
}

func TestQuizHandler_GenerateQuiz(t *testing.T) {
	svc := &MockQuizService{
		GenerateQuizFunc: func(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
			return &dto.GenerateQuizResponse{
				Subject:    req.Topic,
				Difficulty: req.Difficulty,
				Questions: []dto.QuestionResponse{
					{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0},
				},
			}, nil
		},
	}
	app := newTestApp(svc, "user1")

	status, body := postJSON(t, app, "/api/quiz/generate", dto.GenerateQuizRequest{
		Topic: "biology", Difficulty: "easy", NumQuestions: 1,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "biology")
}

func TestQuizHandler_GenerateQuiz_ValidationFailure(t *testing.T) {
	app := newTestApp(&MockQuizService{}, "user1")

	// Neither content nor topic, bad difficulty.
	status, body := postJSON(t, app, "/api/quiz/generate", dto.GenerateQuizRequest{
		Difficulty: "brutal", NumQuestions: 1,
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, string(domain.CodeValidation))
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	var gotUserID string
	svc := &MockQuizService{
		SubmitQuizFunc: func(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			gotUserID = userID
			return &dto.SubmitQuizResponse{EventID: "ev1", XPAwarded: 120}, nil
		},
	}
	app := newTestApp(svc, "user1")

	status, body := postJSON(t, app, "/api/quiz/submit", dto.SubmitQuizRequest{
		Subject: "biology", Difficulty: "medium", QuestionCount: 8, CorrectCount: 6, TimeSpentSeconds: 300,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user1", gotUserID)
	assert.Contains(t, body, "ev1")
}

func TestQuizHandler_SubmitQuiz_NoSessionMapsToUnauthorized(t *testing.T) {
	svc := &MockQuizService{
		SubmitQuizFunc: func(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
			return nil, domain.NewNoSessionError()
		},
	}
	app := newTestApp(svc, "ghost")

	status, body := postJSON(t, app, "/api/quiz/submit", dto.SubmitQuizRequest{
		Subject: "biology", Difficulty: "easy", QuestionCount: 5, CorrectCount: 3,
	})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, string(domain.CodeNoSession))
}
