package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/captable/captable-api/internal/core/domain"
)

// RBAC restricts a route to callers holding one of the given roles. It reads
// the user injected by Auth; rejections surface as domain.ErrForbidden so the
// central error handler renders the canonical envelope.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if user == nil {
				return fmt.Errorf("no authenticated user: %w", domain.ErrForbidden)
			}
			if _, ok := allowed[user.Role]; !ok {
				return fmt.Errorf("role %q not allowed here: %w", user.Role, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
