package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "hrportal_backend/internals/helpers"
)

// ErrorHandler: semua error yang lolos dari handler dirender ke envelope JSON standar.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		if _, ok := err.(*fiber.Error); !ok {
			log.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return helper.FromError(c, err)
	}
}
