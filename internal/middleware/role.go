package middleware // middleware provides shared request processing for handlers

import (
	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/restaurant-reservation/internal/service"
)

// RequireAdmin returns a middleware that lets the request through only when
// the user stored by RequireSession is an admin.  It must be chained after
// RequireSession; without a user it answers 401, with a non-admin 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return service.ErrAuth(service.MsgLoginFirst)
			}
			if !u.IsAdmin {
				return service.ErrForbidden(service.MsgAdminRequired)
			}
			return next(c)
		}
	}
}
