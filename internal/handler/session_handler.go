package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/validation"
)

// SessionHandler handles session lifecycle requests.
type SessionHandler struct {
	sessions  service.SessionService
	stores    *store.Manager
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(sessions service.SessionService, stores *store.Manager) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		stores:    stores,
		validator: validation.NewValidator(),
	}
}

// CreateSession handles POST /api/sessions. It issues the identity token
// and opens the user's progress store so the first snapshot request after
// login is already warm.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateCreateSessionRequest(req); len(errs) > 0 {
		return errs
	}

	session, err := h.sessions.CreateSession(req.DisplayName)
	if err != nil {
		return err
	}

	if _, err := h.stores.Open(c.Context(), session.UserID, session.DisplayName); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}
