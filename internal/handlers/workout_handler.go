package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type workoutStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutEntryInput) (*models.WorkoutEntry, error)
	ListByUser(ctx context.Context, userID int64, startDate, endDate *time.Time) ([]models.WorkoutEntry, error)
}

type WorkoutHandler struct {
	workoutRepo workoutStore
}

func NewWorkoutHandler(workoutRepo workoutStore) *WorkoutHandler {
	return &WorkoutHandler{workoutRepo: workoutRepo}
}

type logWorkoutRequest struct {
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Rating   int     `json:"rating"`
	Notes    *string `json:"notes"`
}

func (h *WorkoutHandler) LogWorkout(c *fiber.Ctx) error {
	userID, err := authUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Type) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type is required"})
	}
	if req.Distance < 0 || req.Duration < 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "distance and duration must not be negative"})
	}
	if req.Rating < 1 || req.Rating > 10 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "rating must be between 1 and 10"})
	}

	entry, err := h.workoutRepo.Create(c.Context(), repository.CreateWorkoutEntryInput{
		UserID:          userID,
		Type:            strings.TrimSpace(req.Type),
		DistanceKM:      req.Distance,
		DurationMinutes: req.Duration,
		Date:            time.Now(),
		Rating:          req.Rating,
		Notes:           req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to log workout"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := authUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	startDate, err := optionalDateQuery(c, "startDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "startDate must be formatted as YYYY-MM-DD"})
	}
	endDate, err := optionalDateQuery(c, "endDate")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "endDate must be formatted as YYYY-MM-DD"})
	}
	if endDate != nil {
		// Inclusive upper bound: the whole end day counts.
		end := endDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
		endDate = &end
	}

	entries, err := h.workoutRepo.ListByUser(c.Context(), userID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch workouts"})
	}

	return c.JSON(fiber.Map{"workouts": entries})
}

func optionalDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
