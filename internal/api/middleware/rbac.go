package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// RBAC admits only sessions whose role is one of roles. It must run after
// RequireSession; a request without a role is forbidden.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	denied := domain.AuthError{
		Error:   "Forbidden",
		Details: "requires one of: " + strings.Join(names, ", "),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(domain.Role)
			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, denied)
		}
	}
}
