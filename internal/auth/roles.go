package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireStaff ensures the principal is a staff account.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsStaff() {
			return fiber.NewError(http.StatusForbidden, "staff account required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures some account is authenticated.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
