// internals/route/details/presence_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/features/presence"
	dailyController "hrportal_backend/internals/features/presence/daily/controller"
	dailyRoutes "hrportal_backend/internals/features/presence/daily/route"
	leaderRoutes "hrportal_backend/internals/features/presence/leadership/route"
	ledgerController "hrportal_backend/internals/features/presence/ledger/controller"
	ledgerRoutes "hrportal_backend/internals/features/presence/ledger/route"
	swipeRoutes "hrportal_backend/internals/features/presence/swipes/route"
)

/* ===================== READER ===================== */
// Endpoint badge reader (X-Reader-Key, bukan JWT)
func PresenceReaderRoutes(r fiber.Router, e *presence.Engine) {
	swipeRoutes.SwipeReaderRoutes(r, e.Gateway)
}

/* ===================== ADMIN / MANAGER ===================== */
// Endpoint reporting + trigger manual (JWT + role)
func PresenceAdminRoutes(r fiber.Router, e *presence.Engine) {
	ledgerRoutes.LedgerAdminRoutes(r, ledgerController.NewLedgerController(e.Ledger, e.Cfg))
	dailyRoutes.DailyAdminRoutes(r, dailyController.NewDailyController(e.Deriver, e.Sweeper, e.Cfg))
	leaderRoutes.LeadershipAdminRoutes(r, e.Scheduler)
}
