package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/JAMA60091234/runmaster-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type profileUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, input repository.UpdateProfileInput) (*models.User, error)
}

type ProfileHandler struct {
	userRepo profileUserStore
}

func NewProfileHandler(userRepo profileUserStore) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

type profileResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	GoalType       string   `json:"goal_type"`
	TargetPace     *float64 `json:"target_pace,omitempty"`
	TargetDistance *float64 `json:"target_distance,omitempty"`
	TargetWeight   *float64 `json:"target_weight,omitempty"`
	Experience     string   `json:"experience"`
	StravaLinked   bool     `json:"strava_linked"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := authUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch user profile"})
	}

	return c.JSON(newProfileResponse(user))
}

type updateProfileRequest struct {
	Name           string   `json:"name"`
	TargetPace     *float64 `json:"target_pace"`
	TargetDistance *float64 `json:"target_distance"`
	TargetWeight   *float64 `json:"target_weight"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := authUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	user, err := h.userRepo.UpdateProfile(c.Context(), userID, repository.UpdateProfileInput{
		Name:           strings.TrimSpace(req.Name),
		TargetPace:     req.TargetPace,
		TargetDistance: req.TargetDistance,
		TargetWeight:   req.TargetWeight,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update user profile"})
	}

	return c.JSON(newProfileResponse(user))
}

func newProfileResponse(user *models.User) profileResponse {
	return profileResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		GoalType:       user.GoalType,
		TargetPace:     user.TargetPace,
		TargetDistance: user.TargetDistance,
		TargetWeight:   user.TargetWeight,
		Experience:     user.Experience,
		StravaLinked:   user.Strava.Connected,
	}
}
