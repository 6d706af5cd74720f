package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

type fakeResolver struct {
	users map[string]model.User
	got   string
}

func (f *fakeResolver) ResolveSession(_ context.Context, token string) (model.User, error) {
	f.got = token
	if token == "" {
		return model.User{}, service.ErrAuth(service.MsgLoginRequired)
	}
	u, ok := f.users[token]
	if !ok {
		return model.User{}, service.ErrAuth(service.MsgInvalidToken)
	}
	return u, nil
}

type body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, cookie *http.Cookie) (*httptest.ResponseRecorder, body) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var b body
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, b
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", service.ErrValidation("bad"), http.StatusBadRequest, "bad"},
		{"conflict", service.ErrConflict(service.MsgEmailTaken), http.StatusBadRequest, service.MsgEmailTaken},
		{"auth", service.ErrAuth(service.MsgLoginRequired), http.StatusUnauthorized, service.MsgLoginRequired},
		{"forbidden", service.ErrForbidden(service.MsgAdminRequired), http.StatusForbidden, service.MsgAdminRequired},
		{"not found", service.ErrNotFound(service.MsgReservationGone), http.StatusNotFound, service.MsgReservationGone},
		{"internal hides cause", service.ErrInternal("store", errors.New("dsn=root:pw")), http.StatusInternalServerError, "Internal Server Error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/x", func(echo.Context) error { return tc.err })
			rec, b := do(t, e, http.MethodGet, "/x", nil)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if b.Success || b.Message != tc.message {
				t.Errorf("body = %+v, want message %q", b, tc.message)
			}
		})
	}
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	rec, b := do(t, newEcho(), http.MethodGet, "/missing", nil)
	if rec.Code != http.StatusNotFound || b.Success {
		t.Fatalf("got %d %+v", rec.Code, b)
	}
}

func TestRequireSession(t *testing.T) {
	ana := model.User{ID: 7, FirstName: "Ana"}
	res := &fakeResolver{users: map[string]model.User{"good": ana}}

	e := newEcho()
	e.GET("/me", func(c echo.Context) error {
		u, ok := CurrentUser(c)
		if !ok {
			return errors.New("no user")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": u.FirstName})
	}, RequireSession(res, "token"))

	rec, b := do(t, e, http.MethodGet, "/me", nil)
	if rec.Code != http.StatusUnauthorized || b.Message != service.MsgLoginRequired {
		t.Errorf("no cookie: %d %+v", rec.Code, b)
	}

	rec, b = do(t, e, http.MethodGet, "/me", &http.Cookie{Name: "token", Value: "forged"})
	if rec.Code != http.StatusUnauthorized || b.Message != service.MsgInvalidToken {
		t.Errorf("forged: %d %+v", rec.Code, b)
	}

	rec, b = do(t, e, http.MethodGet, "/me", &http.Cookie{Name: "token", Value: "good"})
	if rec.Code != http.StatusOK || b.Message != "Ana" {
		t.Errorf("good: %d %+v", rec.Code, b)
	}
	if res.got != "good" {
		t.Errorf("resolver saw %q", res.got)
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"success": true}) }
	cases := []struct {
		name    string
		user    *model.User
		status  int
		message string
	}{
		{"no identity", nil, http.StatusUnauthorized, service.MsgLoginFirst},
		{"customer", &model.User{ID: 1}, http.StatusForbidden, service.MsgAdminRequired},
		{"admin", &model.User{ID: 2, IsAdmin: true}, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			inject := func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					if tc.user != nil {
						SetCurrentUser(c, *tc.user)
					}
					return next(c)
				}
			}
			e.GET("/admin", ok, inject, RequireAdmin())
			rec, b := do(t, e, http.MethodGet, "/admin", nil)
			if rec.Code != tc.status || b.Message != tc.message {
				t.Errorf("got %d %+v, want %d %q", rec.Code, b, tc.status, tc.message)
			}
		})
	}
}

type httpObs struct {
	route  string
	status int
}

type fakeHTTPRecorder struct{ seen []httpObs }

func (f *fakeHTTPRecorder) RecordHTTP(_ string, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, httpObs{route, status})
}

func TestRequestLogger_LogsRenderedStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := &fakeHTTPRecorder{}

	e := newEcho()
	e.Use(RequestLogger(zap.New(core), rec))
	e.GET("/r/:id", func(echo.Context) error { return service.ErrNotFound(service.MsgReservationGone) })

	resp, b := do(t, e, http.MethodGet, "/r/9", nil)
	if resp.Code != http.StatusNotFound || b.Message != service.MsgReservationGone {
		t.Fatalf("got %d %+v", resp.Code, b)
	}
	if len(rec.seen) != 1 || rec.seen[0] != (httpObs{"/r/:id", http.StatusNotFound}) {
		t.Errorf("recorded %+v", rec.seen)
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "guest" || fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("fields = %v", fields)
	}
}
