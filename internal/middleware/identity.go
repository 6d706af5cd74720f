package middleware

// identity.go defines helpers shared across middleware files.  userID
// returns the authenticated user's id as a string, or "guest" when the
// request carries no session.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func userID(c echo.Context) string {
	if u, ok := CurrentUser(c); ok && u.ID != 0 {
		return strconv.FormatUint(u.ID, 10)
	}
	return "guest"
}
