package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/middleware"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/validation"
)

// ResearchHandler handles smart research requests.
type ResearchHandler struct {
	service   service.ResearchService
	validator *validation.Validator
}

// NewResearchHandler creates a new ResearchHandler instance.
func NewResearchHandler(service service.ResearchService) *ResearchHandler {
	return &ResearchHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Query handles POST /api/research/query.
func (h *ResearchHandler) Query(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.ResearchQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateResearchQueryRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Query(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Analyze handles POST /api/research/analyze.
func (h *ResearchHandler) Analyze(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateAnalyzeTextRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Analyze(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
