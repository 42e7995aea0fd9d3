package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type checklistStore interface {
	Upsert(ctx context.Context, input repository.UpsertChecklistInput) (*models.DailyChecklist, error)
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*models.DailyChecklist, error)
}

type ChecklistHandler struct {
	checklistRepo checklistStore
}

func NewChecklistHandler(checklistRepo checklistStore) *ChecklistHandler {
	return &ChecklistHandler{checklistRepo: checklistRepo}
}

func (h *ChecklistHandler) GetChecklist(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "date must be formatted as YYYY-MM-DD"})
	}

	checklist, err := h.checklistRepo.GetByUserAndDate(c.Context(), userID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Checklist not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch checklist"})
	}

	return c.JSON(checklist)
}

type upsertChecklistRequest struct {
	RunDone       bool    `json:"runDone"`
	CaloriesEaten *int    `json:"caloriesEaten"`
	Mood          string  `json:"mood"`
	Notes         *string `json:"notes"`
}

func (h *ChecklistHandler) UpsertChecklist(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "date must be formatted as YYYY-MM-DD"})
	}

	var req upsertChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.IsValidMood(req.Mood) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "mood must be one of great, good, okay, tired, stressed"})
	}
	if req.CaloriesEaten != nil && *req.CaloriesEaten < 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "caloriesEaten must not be negative"})
	}

	checklist, err := h.checklistRepo.Upsert(c.Context(), repository.UpsertChecklistInput{
		UserID:        userID,
		Date:          date,
		RunDone:       req.RunDone,
		CaloriesEaten: req.CaloriesEaten,
		Mood:          req.Mood,
		Notes:         req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to save checklist"})
	}

	return c.JSON(checklist)
}
