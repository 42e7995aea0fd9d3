package handlers

import (
	"context"
	"errors"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type goalUserStore interface {
	UpdateGoal(ctx context.Context, userID int64, input repository.UpdateGoalInput) (*models.User, error)
}

type planRegenerator interface {
	RegenerateForUser(ctx context.Context, user *models.User) (*models.TrainingPlan, error)
}

type UserHandler struct {
	userRepo    goalUserStore
	planService planRegenerator
}

func NewUserHandler(userRepo goalUserStore, planService planRegenerator) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		planService: planService,
	}
}

type updateGoalRequest struct {
	Type           string   `json:"type"`
	TargetPace     *float64 `json:"targetPace"`
	TargetDistance *float64 `json:"targetDistance"`
	TargetWeight   *float64 `json:"targetWeight"`
	Experience     string   `json:"experience"`
}

// UpdateGoal stores the new goal and swaps in a freshly generated plan. The
// previous plan is deactivated, never deleted.
func (h *UserHandler) UpdateGoal(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req updateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.IsValidGoalType(req.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal type"})
	}
	if !models.IsValidExperience(req.Experience) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid experience level"})
	}

	user, err := h.userRepo.UpdateGoal(c.Context(), userID, repository.UpdateGoalInput{
		GoalType:       req.Type,
		TargetPace:     req.TargetPace,
		TargetDistance: req.TargetDistance,
		TargetWeight:   req.TargetWeight,
		Experience:     req.Experience,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update goal"})
	}

	plan, err := h.planService.RegenerateForUser(c.Context(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create training plan"})
	}

	return c.JSON(fiber.Map{"user": user, "plan": plan})
}
