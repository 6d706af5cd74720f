package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

// requestTimeout bounds the store work done for one request.
const requestTimeout = 5 * time.Second

// MsgInvalidBody is returned when the request body cannot be decoded.
const MsgInvalidBody = "Invalid request body"

// CookieConfig describes the session cookie.  Development mode relaxes it
// to SameSite=Lax without Secure so it works over plain http on localhost.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// CookieFromConfig derives the cookie attributes from the runtime mode.
func CookieFromConfig(cfg config.Config) CookieConfig {
	if cfg.IsDevelopment() {
		return CookieConfig{Name: cfg.CookieName, Secure: false, SameSite: http.SameSiteLaxMode}
	}
	return CookieConfig{Name: cfg.CookieName, Secure: true, SameSite: http.SameSiteNoneMode}
}

func (cc CookieConfig) session(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: cc.SameSite,
	}
}

func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return service.ErrValidation(MsgInvalidBody)
	}
	return nil
}
