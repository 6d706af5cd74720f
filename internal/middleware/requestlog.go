package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPRecorder receives one observation per served request.
// *metrics.Collector implements it.
type HTTPRecorder interface {
	RecordHTTP(method, route string, status int, d time.Duration)
}

// RequestLogger logs every request with method, route, status, latency and
// user id, and reports it to rec when rec is non-nil.  4xx responses are
// logged at warn level and 5xx at error level.
func RequestLogger(log *zap.Logger, rec HTTPRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Render now so the logged status is the one the client sees.
				c.Error(err)
			}
			elapsed := time.Since(start)
			status := c.Response().Status
			route := c.Path()

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("route", route),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
				zap.String("user_id", userID(c)),
				zap.String("remote_ip", c.RealIP()),
			}
			switch {
			case status >= 500:
				log.Error("http_request", fields...)
			case status >= 400:
				log.Warn("http_request", fields...)
			default:
				log.Info("http_request", fields...)
			}
			if rec != nil {
				rec.RecordHTTP(c.Request().Method, route, status, elapsed)
			}
			return nil
		}
	}
}
