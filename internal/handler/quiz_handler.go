package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/middleware"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/validation"
)

// QuizHandler handles quiz generation and submission requests.
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz handles POST /api/quiz/generate.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz handles POST /api/quiz/submit.
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateSubmitQuizRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitQuiz(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
