package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type planApplicationService interface {
	GeneratePlanText(ctx context.Context, input services.PromptInput) (string, error)
	GetPlanOverview(ctx context.Context, userID int64, now time.Time) (*models.TrainingPlan, *services.PlanProgress, error)
	CompleteWorkout(ctx context.Context, workoutID int64, stravaActivityID *int64) (*models.TrainingPlan, error)
}

type PlanHandler struct {
	service planApplicationService
}

func NewPlanHandler(service planApplicationService) *PlanHandler {
	return &PlanHandler{service: service}
}

type generatePlanRequest struct {
	Age         int     `json:"age"`
	Weight      float64 `json:"weight"`
	Goal        string  `json:"goal"`
	Experience  string  `json:"experience"`
	DaysPerWeek int     `json:"daysPerWeek"`
}

// GeneratePlan is the stateless plan-text endpoint: onboarding stats in,
// coaching text out.
func (h *PlanHandler) GeneratePlan(c *fiber.Ctx) error {
	var req generatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Age <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "age must be greater than 0"})
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "daysPerWeek must be between 1 and 7"})
	}

	plan, err := h.service.GeneratePlanText(c.Context(), services.PromptInput{
		Age:         req.Age,
		WeightLbs:   req.Weight,
		Goal:        req.Goal,
		Experience:  req.Experience,
		DaysPerWeek: req.DaysPerWeek,
	})
	if err != nil {
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plan": plan})
}

func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	plan, progress, err := h.service.GetPlanOverview(c.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"error": "No active training plan found"})
		}
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plan": plan, "progress": progress})
}

type completeWorkoutRequest struct {
	WorkoutID        string `json:"workoutId"`
	StravaActivityID string `json:"stravaActivityId"`
}

func (h *PlanHandler) CompleteWorkout(c *fiber.Ctx) error {
	var req completeWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	workoutID, err := strconv.ParseInt(req.WorkoutID, 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "workoutId must be a positive integer"})
	}

	var stravaActivityID *int64
	if req.StravaActivityID != "" {
		parsed, err := strconv.ParseInt(req.StravaActivityID, 10, 64)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "stravaActivityId must be a positive integer"})
		}
		stravaActivityID = &parsed
	}

	plan, err := h.service.CompleteWorkout(c.Context(), workoutID, stravaActivityID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return mapPlanError(c, err)
	}

	return c.JSON(fiber.Map{"plan": plan})
}

func mapPlanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrGeneratorDisabled):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"error": "Plan generation is not configured"})
	case errors.Is(err, services.ErrUpstream), errors.Is(err, services.ErrUpstreamAuth):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to generate plan"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process plan request"})
	}
}
