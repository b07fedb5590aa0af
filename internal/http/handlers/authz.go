package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maktaba/internal/admin"
	applog "maktaba/internal/log"
)

const adminCookie = "admin_token"

// RequireAdmin admits only requests carrying a live admin session token.
func RequireAdmin(gate *admin.Gate, adminPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.Valid(c.Cookies(adminCookie)) {
			applog.Security(c, "access.denied.admin", nil)
			return c.Redirect(adminPath + "/login")
		}
		return c.Next()
	}
}
