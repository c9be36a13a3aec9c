// file: internals/features/presence/leadership/controller/leadership_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/features/presence/leadership/service"
	helper "hrportal_backend/internals/helpers"
)

type LeadershipController struct {
	Scheduler *service.Scheduler
}

// POST /api/a/presence/leadership/tick  (trigger manual, admin)
func (h *LeadershipController) Tick(c *fiber.Ctx) error {
	report := h.Scheduler.Tick(c.UserContext())
	msg := "Tick selesai"
	if report.Skipped {
		msg = "Tick dilewati"
	}
	return helper.JsonOK(c, msg, report)
}
