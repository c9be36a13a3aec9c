// file: internals/middlewares/auth/reader_key.go
package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "hrportal_backend/internals/helpers"
)

const HeaderReaderKey = "X-Reader-Key"

// ReaderKeyGuard: badge reader wajib kirim X-Reader-Key yang cocok.
// key kosong = guard dimatikan (mis. reader di jaringan internal).
func ReaderKeyGuard(key string) fiber.Handler {
	key = strings.TrimSpace(key)
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		got := strings.TrimSpace(c.Get(HeaderReaderKey))
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Reader key tidak valid")
		}
		return c.Next()
	}
}
