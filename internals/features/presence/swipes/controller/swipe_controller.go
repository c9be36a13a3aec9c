// file: internals/features/presence/swipes/controller/swipe_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/features/presence/swipes/dto"
	"hrportal_backend/internals/features/presence/swipes/service"
	helper "hrportal_backend/internals/helpers"
)

type SwipeController struct {
	Gateway *service.Gateway
}

func NewSwipeController(gw *service.Gateway) *SwipeController {
	return &SwipeController{Gateway: gw}
}

/* =========================================================
   POST /api/presence/swipes
   Body: JSON / form-data, fallback ke query string
   ========================================================= */
func (h *SwipeController) Ingest(c *fiber.Ctx) error {
	var req dto.SwipeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	if req.BadgeTag == "" && req.RoomNo == "" && req.LocationName == "" {
		if err := c.QueryParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
		}
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Gateway.Ingest(c.UserContext(), req.ToInput())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, res.Status, res)
}
