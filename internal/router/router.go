package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// RegisterRoutes registers routes that do not require authentication and
// live outside the versioned API: the hello root, the health check and,
// when metricsHandler is non-nil, the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, metricsHandler http.Handler) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

// RegisterAuth registers the /auth routes.  limiter guards the credential
// endpoints (signup and both logins); session guards /auth/me.  Logout is
// public so a client holding an expired cookie can still clear it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, session, limiter echo.MiddlewareFunc) {
	g := e.Group(APIPrefix + "/auth")
	g.POST("/signup", a.Signup, limiter)
	g.POST("/login", a.Login, limiter)
	g.POST("/admin/login", a.AdminLogin, limiter)
	g.GET("/logout", a.Logout)
	g.GET("/me", a.Me, session)
}

// RegisterReservation registers the /reservation routes.  Every route needs
// a session; listing and status changes additionally need an admin.
func RegisterReservation(e *echo.Echo, r *handler.ReservationHandler, session echo.MiddlewareFunc) {
	g := e.Group(APIPrefix+"/reservation", session)
	g.POST("/send", r.Send)

	g.GET("/all", r.All, middleware.RequireAdmin())
	g.PATCH("/update/:id", r.Update, middleware.RequireAdmin())
}
