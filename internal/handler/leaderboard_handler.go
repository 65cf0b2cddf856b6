package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
)

// LeaderboardHandler handles global ranking requests.
type LeaderboardHandler struct {
	service service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance.
func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard handles GET /api/leaderboard.
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	resp, err := h.service.Top(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
