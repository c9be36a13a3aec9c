// file: internals/features/presence/daily/controller/daily_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/features/presence/daily/dto"
	"hrportal_backend/internals/features/presence/daily/service"
	helper "hrportal_backend/internals/helpers"
	"hrportal_backend/internals/helpers/dbtime"
)

type DailyController struct {
	Deriver *service.Deriver
	Sweeper *service.Sweeper
	Cfg     configs.PresenceConfig
	Clock   func() time.Time
}

func NewDailyController(d *service.Deriver, sw *service.Sweeper, cfg configs.PresenceConfig) *DailyController {
	return &DailyController{Deriver: d, Sweeper: sw, Cfg: cfg, Clock: time.Now}
}

// GET /api/a/presence/daily?day=&status=
func (h *DailyController) List(c *fiber.Ctx) error {
	var q dto.DailyQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	q.Normalize()
	if err := helper.Validate.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}
	day, err := dbtime.ParseDay(q.Day, h.Clock(), h.Cfg.Location)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "day harus YYYY-MM-DD")
	}

	rows, err := h.Deriver.Summaries(c.UserContext(), day, q.Status)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/a/presence/sweep?day=  (admin; default hari ini)
func (h *DailyController) Sweep(c *fiber.Ctx) error {
	day, err := dbtime.ParseDay(c.Query("day"), h.Clock(), h.Cfg.Location)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "day harus YYYY-MM-DD")
	}
	report := h.Sweeper.Sweep(c.UserContext(), day)
	if report.Error != "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Sweep gagal: "+report.Error)
	}
	return helper.JsonOK(c, "Sweep selesai", report)
}
