package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type StreakHandler struct {
	streakService *service.StreakService
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// GetStreak GET /v1/me/streak
func (h *StreakHandler) GetStreak(c *fiber.Ctx) error {
	status, err := h.streakService.EvaluateStreak(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// UpdateConfig PUT /v1/me/streak/config
func (h *StreakHandler) UpdateConfig(c *fiber.Ctx) error {
	var cfg domain.StreakConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	status, err := h.streakService.UpdateConfig(c.UserContext(), middleware.GetUserID(c), cfg)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// CompleteWorkout POST /v1/me/streak/complete
func (h *StreakHandler) CompleteWorkout(c *fiber.Ctx) error {
	status, err := h.streakService.RecordWorkoutCompletion(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}
