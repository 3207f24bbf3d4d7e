package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/services"
)

// Locals key under which the guard stores the resolved user.
const LocalUser = "user"

// RequireRoles gates a route group by role. Unauthenticated callers are
// redirected to the login view; authenticated callers with the wrong role
// are redirected to their own role's dashboard. On success the resolved
// (live, re-validated) user is stored in the context for downstream
// handlers.
func RequireRoles(identity core.IdentityProvider, roles ...core.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		decision := services.Guard(c.Context(), identity, roles...)
		if !decision.Allowed {
			return c.Redirect().Status(fiber.StatusFound).To(decision.RedirectTo)
		}

		c.Locals(LocalUser, decision.User)
		return c.Next()
	}
}

// UserFromContext returns the guard-resolved user, if any.
func UserFromContext(c fiber.Ctx) *core.User {
	user, _ := c.Locals(LocalUser).(*core.User)
	return user
}
