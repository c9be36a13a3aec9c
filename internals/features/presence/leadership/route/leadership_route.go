// file: internals/features/presence/leadership/route/leadership_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence/leadership/controller"
	"hrportal_backend/internals/features/presence/leadership/service"
	authMiddleware "hrportal_backend/internals/middlewares/auth"
)

func LeadershipAdminRoutes(r fiber.Router, s *service.Scheduler) {
	ctl := &controller.LeadershipController{Scheduler: s}

	r.Post("/leadership/tick",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("menjalankan failover"), constants.AdminOnly...),
		ctl.Tick) // POST /api/a/presence/leadership/tick
}
