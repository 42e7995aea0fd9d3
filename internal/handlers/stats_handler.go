package handlers

import (
	"context"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type weeklyStatsProvider interface {
	GetWeeklyStats(ctx context.Context, userID int64, now time.Time) (*services.WeeklyStats, error)
}

type StatsHandler struct {
	service weeklyStatsProvider
}

func NewStatsHandler(service weeklyStatsProvider) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) GetWeeklyStats(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	stats, err := h.service.GetWeeklyStats(c.Context(), userID, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to compute stats"})
	}

	return c.JSON(stats)
}
