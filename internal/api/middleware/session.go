package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// Context keys set by RequireSession.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextAuth     = "auth"
)

// RequireSession resolves the caller's session through the bridge and
// injects the user into the context. Requests without a session get 401.
func RequireSession(bridge ports.BridgeService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ex := ports.NewExchange(c.Request().Header)
			ex.ClientIP = c.RealIP()
			auth, err := bridge.Session(c.Request().Context(), ex)
			if err != nil {
				return err
			}
			if auth == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(ContextUserID, auth.User.ID)
			c.Set(ContextUsername, auth.User.Username)
			c.Set(ContextRole, auth.User.Role)
			c.Set(ContextAuth, auth)

			return next(c)
		}
	}
}

// Auth returns the session injected by RequireSession, or nil.
func Auth(c echo.Context) *domain.AuthResponse {
	auth, _ := c.Get(ContextAuth).(*domain.AuthResponse)
	return auth
}
