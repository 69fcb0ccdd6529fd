package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps bridge errors to their HTTP status and the {"error", "details"} envelope.
//   - Relays provider rejections with the provider's own status.
//   - Logs contract breaks and unexpected errors without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, domain.AuthError) {
	var (
		he *echo.HTTPError
		ve *domain.ValidationError
		pe *domain.ProviderError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, domain.AuthError{Error: "Invalid request", Details: ve.Details}
	case errors.As(err, &pe):
		status := pe.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, pe.Body
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.AuthError{Error: "User not found"}
	case domain.IsNormalization(err):
		logError(log, c, err, "invalid response from auth provider")
		return http.StatusInternalServerError, domain.AuthError{Error: "Invalid response from auth provider"}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logError(log, c, err, "auth provider unavailable")
		return http.StatusInternalServerError, domain.AuthError{Error: "Auth provider unavailable"}
	case errors.As(err, &he):
		// Echo's own errors (bind failures, 404 from router, etc.)
		return he.Code, domain.AuthError{Error: fmt.Sprintf("%v", he.Message)}
	}

	logError(log, c, err, "unhandled error")
	return http.StatusInternalServerError, domain.AuthError{Error: "internal server error"}
}

func logError(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
