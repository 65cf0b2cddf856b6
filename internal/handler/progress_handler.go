package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/middleware"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
)

// streamWait bounds the long-poll; clients re-poll immediately after each
// response, so a shorter wait just costs an extra round trip.
const streamWait = 25 * time.Second

// ProgressHandler handles progress and achievement requests.
type ProgressHandler struct {
	service service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler instance.
func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// GetStats handles GET /api/progress.
func (h *ProgressHandler) GetStats(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	resp, err := h.service.Snapshot(userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory handles GET /api/progress/history.
func (h *ProgressHandler) GetHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	resp, err := h.service.History(userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAchievements handles GET /api/progress/achievements.
func (h *ProgressHandler) GetAchievements(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	resp, err := h.service.Achievements(userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSyncStatus handles GET /api/progress/sync.
func (h *ProgressHandler) GetSyncStatus(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	resp, err := h.service.SyncStatus(userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Stream handles GET /api/progress/stream: a long-poll that answers with
// the next committed snapshot, or the current one after the wait expires.
func (h *ProgressHandler) Stream(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	ctx, cancel := context.WithTimeout(c.Context(), streamWait)
	defer cancel()

	resp, err := h.service.Watch(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Reset handles DELETE /api/progress.
func (h *ProgressHandler) Reset(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	resp, err := h.service.Reset(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
