// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrportal_backend/internals/features/presence"
	helper "hrportal_backend/internals/helpers"
	middlewares "hrportal_backend/internals/middlewares"
	authMiddleware "hrportal_backend/internals/middlewares/auth"
	routeDetails "hrportal_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, engine *presence.Engine, jwtSecret string, logger *zap.Logger) {
	startTime = time.Now()
	logger = logger.Named("routes")

	BaseRoutes(app, db)

	// ===================== READER (badge reader) =====================
	logger.Info("Setting up READER group...")
	reader := app.Group("/api/presence",
		middlewares.ReaderRateLimiter(0),
		authMiddleware.ReaderKeyGuard(engine.Cfg.ReaderKey),
	)

	// ===================== ADMIN / MANAGER =====================
	logger.Info("Setting up ADMIN group (Auth + RoleCheck per route)...")
	var guard fiber.Handler
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET kosong, semua route /api/a ditolak")
		guard = func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
	} else {
		guard = authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		})
	}
	admin := app.Group("/api/a/presence", middlewares.GlobalRateLimiter(), guard)

	// ===================== MOUNT ROUTES =====================
	logger.Info("Mounting Presence routes...")
	routeDetails.PresenceReaderRoutes(reader, engine)
	routeDetails.PresenceAdminRoutes(admin, engine)
}
