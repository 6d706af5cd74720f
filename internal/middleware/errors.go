package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservation/internal/service"
)

// StatusFor maps a service error kind to its HTTP status.  Conflicts are
// reported as 400 like other rejected input.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders every error returned by a handler or middleware as
// {"success": false, "message": ...}.  Internal errors are logged and
// reported with a fixed message so causes never reach the client.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := http.StatusText(http.StatusInternalServerError)

		var svcErr *service.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &svcErr):
			status = StatusFor(svcErr.Kind)
			if svcErr.Kind != service.KindInternal {
				message = svcErr.Message
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, echo.Map{"success": false, "message": message})
		}
		if writeErr != nil {
			log.Warn("write error response failed", zap.Error(writeErr))
		}
	}
}
