package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/middleware"
)

// PlanHandler exposes the plan store. Plans are plain documents, so the
// handler talks to the repository directly.
type PlanHandler struct {
	planRepo domain.PlanRepository
}

func NewPlanHandler(planRepo domain.PlanRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo}
}

// ListPlans GET /v1/me/plans
func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.planRepo.ListByUser(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if plans == nil {
		plans = []*domain.Plan{}
	}
	return c.JSON(plans)
}

// GetPlan GET /v1/me/plans/:plan_id
func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.planRepo.GetByID(c.UserContext(), middleware.GetUserID(c), c.Params("plan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// PutPlan PUT /v1/me/plans/:plan_id
func (h *PlanHandler) PutPlan(c *fiber.Ctx) error {
	var plan domain.Plan
	if err := c.BodyParser(&plan); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	plan.ID = c.Params("plan_id")
	plan.UserID = middleware.GetUserID(c)

	if err := plan.Validate(); err != nil {
		return respondError(c, err)
	}
	if err := h.planRepo.Upsert(c.UserContext(), &plan); err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// DeletePlan DELETE /v1/me/plans/:plan_id
func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.planRepo.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("plan_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
