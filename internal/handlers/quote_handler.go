package handlers

import (
	"context"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type quoteProvider interface {
	QuoteOfTheDay(ctx context.Context, now time.Time) (*models.Quote, error)
}

type QuoteHandler struct {
	service quoteProvider
}

func NewQuoteHandler(service quoteProvider) *QuoteHandler {
	return &QuoteHandler{service: service}
}

func (h *QuoteHandler) QuoteOfTheDay(c *fiber.Ctx) error {
	quote, err := h.service.QuoteOfTheDay(c.Context(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate quote"})
	}
	return c.JSON(fiber.Map{"quote": quote.Text})
}
