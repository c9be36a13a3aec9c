// file: internals/features/presence/ledger/route/ledger_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/constants"
	"hrportal_backend/internals/features/presence/ledger/controller"
	authMiddleware "hrportal_backend/internals/middlewares/auth"
)

// Panggil ini dengan r = app.Group("/api/a/presence") (sudah JWT)
func LedgerAdminRoutes(r fiber.Router, ctl *controller.LedgerController) {
	managers := authMiddleware.OnlyRoles(constants.RoleErrorManager("laporan kehadiran"), constants.ManagerAndAbove...)
	admins := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("review swipe"), constants.AdminOnly...)

	r.Get("/headcount", managers, ctl.Headcount)                         // GET /headcount?day=
	r.Get("/headcount/:location/:room", managers, ctl.HeadcountForRoom)  // GET /headcount/Main%20Gate/77
	r.Get("/occupants/:location/:room", managers, ctl.Occupants)         // GET /occupants/L1/R5
	r.Get("/employees/:code/logs", managers, ctl.EmployeeLogs)           // GET /employees/E001/logs?limit=
	r.Get("/employees/:code/hours", managers, ctl.EmployeeHours)         // GET /employees/E001/hours?from=
	r.Get("/absentees", managers, ctl.Absentees)                         // GET /absentees?department=

	r.Get("/unmatched", admins, ctl.ListUnmatched)           // GET    /unmatched?q=
	r.Delete("/unmatched/:tag", admins, ctl.ResolveUnmatched) // DELETE /unmatched/:tag
	r.Get("/rejected", admins, ctl.ListRejected)             // GET    /rejected
}
