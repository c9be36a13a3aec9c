// file: internals/helpers/errors.go
package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromError: *fiber.Error tetap dengan code-nya, record not found → 404,
// selain itu 500 (pesan asli tidak dibocorkan).
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// ValidationError: error validator.v10 → field errors (key = nama json field).
// Error lain → 400 generic.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		out[name] = append(out[name], fe.Tag())
	}
	return JsonValidationError(c, fiber.StatusBadRequest, out)
}
