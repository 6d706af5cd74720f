package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
)

func TestCookieFromConfig(t *testing.T) {
	dev := CookieFromConfig(config.Config{Env: config.DevelopmentEnv, CookieName: "token"})
	if dev.Secure || dev.SameSite != http.SameSiteLaxMode {
		t.Errorf("development cookie = %+v", dev)
	}
	prod := CookieFromConfig(config.Config{Env: "Production", CookieName: "sid"})
	if !prod.Secure || prod.SameSite != http.SameSiteNoneMode || prod.Name != "sid" {
		t.Errorf("production cookie = %+v", prod)
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	cc := CookieConfig{Name: "token", Secure: true, SameSite: http.SameSiteNoneMode}
	exp := time.Now().Add(7 * 24 * time.Hour)
	ck := cc.session("abc", exp)
	if !ck.HttpOnly || !ck.Secure || ck.Path != "/" || !ck.Expires.Equal(exp) {
		t.Errorf("cookie = %+v", ck)
	}
}

func TestConstructorsRejectNil(t *testing.T) {
	for name, fn := range map[string]func(){
		"auth":        func() { NewAuthHandler(nil, CookieConfig{}) },
		"reservation": func() { NewReservationHandler(nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestRoot(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := Root(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
