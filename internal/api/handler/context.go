package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

// bindAndValidate decodes the body into req and runs its validate tags.
// Every failure is reported as a *domain.ValidationError.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		details := "malformed request body"
		if errors.As(err, &he) {
			if msg, ok := he.Message.(string); ok && msg != "" {
				details = msg
			}
		}
		return &domain.ValidationError{Details: details}
	}
	return c.Validate(req)
}

// exchange starts a provider exchange for the current request.
func exchange(c echo.Context) *ports.Exchange {
	ex := ports.NewExchange(c.Request().Header)
	ex.ClientIP = c.RealIP()
	return ex
}

// relay copies the provider's response headers onto the client response.
// Set-Cookie values are added, never replaced.
func relay(c echo.Context, ex *ports.Exchange) {
	h := c.Response().Header()
	for k, values := range ex.Outbound {
		for _, v := range values {
			h.Add(k, v)
		}
	}
}
