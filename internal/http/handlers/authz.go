package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	applog "servio/internal/log"
)

// RequireAdminToken guards the ops dashboard with a shared token from
// config. Accepts the X-Admin-Token header or, for dashboard forms, a
// "token" form/query value.
func RequireAdminToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			applog.Security(c, "admin.token.unset", nil)
			return c.SendStatus(fiber.StatusForbidden)
		}
		got := c.Get("X-Admin-Token")
		if got == "" {
			got = c.FormValue("token")
		}
		if got == "" {
			got = c.Query("token")
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			applog.Security(c, "admin.token.reject", nil)
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}
}
