// file: internals/features/presence/daily/route/daily_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence/daily/controller"
	authMiddleware "hrportal_backend/internals/middlewares/auth"
)

// Panggil ini dengan r = app.Group("/api/a/presence") (sudah JWT)
func DailyAdminRoutes(r fiber.Router, ctl *controller.DailyController) {
	r.Get("/daily",
		authMiddleware.OnlyRoles(constants.RoleErrorManager("melihat rekap harian"), constants.ManagerAndAbove...),
		ctl.List) // GET  /api/a/presence/daily
	r.Post("/sweep",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("menjalankan absentee sweep"), constants.AdminOnly...),
		ctl.Sweep) // POST /api/a/presence/sweep
}
