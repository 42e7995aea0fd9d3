package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type mealPlanGenerator interface {
	GenerateMealPlan(ctx context.Context, planType string) (json.RawMessage, error)
}

type MealHandler struct {
	service mealPlanGenerator
}

func NewMealHandler(service mealPlanGenerator) *MealHandler {
	return &MealHandler{service: service}
}

type generateMealPlanRequest struct {
	PlanType string `json:"planType"`
}

func (h *MealHandler) GenerateMealPlan(c *fiber.Ctx) error {
	var req generateMealPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PlanType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "planType is required"})
	}

	mealPlan, err := h.service.GenerateMealPlan(c.Context(), req.PlanType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		case errors.Is(err, services.ErrGeneratorDisabled):
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"error": "Meal plan generation is not configured"})
		default:
			return c.Status(fiber.StatusBadGateway).
				JSON(fiber.Map{"error": "Failed to generate meal plan"})
		}
	}

	c.Set("Content-Type", "application/json")
	return c.Send(mealPlan)
}
