package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type GhostHandler struct {
	ghostService *service.GhostService
}

func NewGhostHandler(ghostService *service.GhostService) *GhostHandler {
	return &GhostHandler{ghostService: ghostService}
}

// DayGhosts GET /v1/me/plans/:plan_id/weeks/:week_id/days/:day_id/ghosts?exclude_session=
func (h *GhostHandler) DayGhosts(c *fiber.Ctx) error {
	ref := dayRefFromPath(c)
	ref.ExcludeSessionID = c.Query("exclude_session")

	ghosts, err := h.ghostService.DayGhosts(c.UserContext(), ref)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ghosts)
}

// ResolveGhost GET .../days/:day_id/ghosts/resolve?exercise_id=&exercise_name=&set_index=
func (h *GhostHandler) ResolveGhost(c *fiber.Ctx) error {
	ref := dayRefFromPath(c)
	ref.ExcludeSessionID = c.Query("exclude_session")

	exercise := domain.ExerciseRef{
		ID:   c.Query("exercise_id"),
		Name: c.Query("exercise_name"),
	}
	if exercise.ID == "" && exercise.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "exercise_id or exercise_name is required"})
	}
	setIndex := c.QueryInt("set_index", 0)
	if setIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "set_index must be >= 0"})
	}

	value, err := h.ghostService.ResolveGhost(c.UserContext(), ref, exercise, setIndex)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"exercise":  exercise,
		"set_index": setIndex,
		"ghost":     value,
		"exists":    value.Exists(),
	})
}
