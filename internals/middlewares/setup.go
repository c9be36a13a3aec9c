package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hrportal_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan recover → cors → access log.
func SetupMiddlewares(app *fiber.App, timeZone string, log *zap.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware(timeZone))
}
