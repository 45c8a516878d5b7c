package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SaveSession POST /v1/me/sessions
func (h *SessionHandler) SaveSession(c *fiber.Ctx) error {
	var record domain.SessionRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if err := h.sessionService.SaveSession(c.UserContext(), middleware.GetUserID(c), &record); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// MergeSession POST /v1/me/plans/:plan_id/weeks/:week_id/days/:day_id/session/merge
func (h *SessionHandler) MergeSession(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
		}
	}

	ref := dayRefFromPath(c)
	telemetry.SetSpanAttribute(c, "liftlog.day_id", ref.DayID)

	merged, err := h.sessionService.MergeSessionWithDay(c.UserContext(), ref, req.SessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(merged)
}

func dayRefFromPath(c *fiber.Ctx) service.DayRef {
	return service.DayRef{
		UserID: middleware.GetUserID(c),
		PlanID: c.Params("plan_id"),
		WeekID: c.Params("week_id"),
		DayID:  c.Params("day_id"),
	}
}
