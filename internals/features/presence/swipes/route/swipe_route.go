// file: internals/features/presence/swipes/route/swipe_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"hrportal_backend/internals/features/presence/swipes/controller"
	"hrportal_backend/internals/features/presence/swipes/service"
)

// Panggil ini dengan r = app.Group("/api/presence", readerGuard...)
func SwipeReaderRoutes(r fiber.Router, gw *service.Gateway) {
	ctl := controller.NewSwipeController(gw)

	r.Post("/swipes", ctl.Ingest) // POST /api/presence/swipes
}
