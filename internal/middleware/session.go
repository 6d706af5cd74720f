package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"time"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// userKey is the echo context key holding the authenticated model.User.
const userKey = "user"

// SessionResolver turns a session token into the user it was issued for.
// *service.AuthService implements it.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (model.User, error)
}

// RequireSession returns an Echo middleware that reads the session token
// from the named cookie, resolves it and stores the user in the context.
// Handlers read it back with CurrentUser.  A missing cookie is the same as
// an empty token, which the resolver rejects.
func RequireSession(resolver SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if ck, err := c.Cookie(cookieName); err == nil {
				token = ck.Value
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := resolver.ResolveSession(ctx, token)
			if err != nil {
				return err
			}
			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userKey).(model.User)
	return u, ok
}

// SetCurrentUser stores u as the authenticated user.  It exists for tests
// and for handlers mounted behind a custom gate.
func SetCurrentUser(c echo.Context, u model.User) { c.Set(userKey, u) }
