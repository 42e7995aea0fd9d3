package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/JAMA60091234/runmaster-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stravaApplicationService interface {
	InitiateLink(userID int64) string
	CompleteLink(ctx context.Context, userID int64, code string) error
	Status(ctx context.Context, userID int64) (*services.StravaStatus, error)
	SyncActivities(ctx context.Context, userID int64) (int, error)
	Disconnect(ctx context.Context, userID int64) error
	FetchRuns(ctx context.Context, accessToken string) ([]services.StravaActivity, error)
}

type StravaHandler struct {
	service     stravaApplicationService
	frontendURL string
}

func NewStravaHandler(service stravaApplicationService, frontendURL string) *StravaHandler {
	return &StravaHandler{
		service:     service,
		frontendURL: frontendURL,
	}
}

// Connect redirects the browser into Strava's authorization screen, with the
// user id riding in the state parameter.
func (h *StravaHandler) Connect(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId is required"})
	}
	return c.Redirect(h.service.InitiateLink(userID), fiber.StatusTemporaryRedirect)
}

// Callback completes the OAuth dance and bounces back to the settings page,
// flagging success or failure in the query string like the frontend expects.
func (h *StravaHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	userID, err := strconv.ParseInt(c.Query("state"), 10, 64)
	if err != nil || userID <= 0 {
		return c.Redirect(h.frontendURL+"/settings?strava=error", fiber.StatusTemporaryRedirect)
	}

	if err := h.service.CompleteLink(c.Context(), userID, code); err != nil {
		return c.Redirect(h.frontendURL+"/settings?strava=error", fiber.StatusTemporaryRedirect)
	}
	return c.Redirect(h.frontendURL+"/settings?strava=success", fiber.StatusTemporaryRedirect)
}

func (h *StravaHandler) Status(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	status, err := h.service.Status(c.Context(), userID)
	if err != nil {
		return mapStravaError(c, err)
	}
	return c.JSON(status)
}

func (h *StravaHandler) Sync(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	imported, err := h.service.SyncActivities(c.Context(), userID)
	if err != nil {
		return mapStravaError(c, err)
	}
	return c.JSON(fiber.Map{"imported": imported})
}

func (h *StravaHandler) Disconnect(c *fiber.Ctx) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.Disconnect(c.Context(), userID); err != nil {
		return mapStravaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Strava disconnected successfully"})
}

// Runs proxies the raw activity list for a caller-supplied token. Legacy
// endpoint kept for the original frontend.
func (h *StravaHandler) Runs(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	runs, err := h.service.FetchRuns(c.Context(), token)
	if err != nil {
		return mapStravaError(c, err)
	}
	return c.JSON(fiber.Map{"runs": runs})
}

func mapStravaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrNotConnected), errors.Is(err, services.ErrNoRefreshToken):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Strava account is not connected"})
	case errors.Is(err, services.ErrUpstreamAuth):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Strava auth failed"})
	case errors.Is(err, services.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to reach Strava"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process Strava request"})
	}
}
