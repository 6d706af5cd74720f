package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

// AuthHandler serves signup, login, logout and the current-user endpoint.
// Errors are returned to echo and rendered by middleware.ErrorHandler.
type AuthHandler struct {
	Auth   *service.AuthService
	Cookie CookieConfig
}

// NewAuthHandler panics if auth is nil.
func NewAuthHandler(auth *service.AuthService, cookie CookieConfig) *AuthHandler {
	if auth == nil {
		panic("nil auth service passed to NewAuthHandler")
	}
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{Auth: auth, Cookie: cookie}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup.  On success the new user is logged in
// straight away.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req service.SignupInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return h.startSession(c, http.StatusCreated, u, "User registered successfully")
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.startSession(c, http.StatusOK, u, "Welcome back, "+u.FirstName+"!")
}

// AdminLogin handles POST /auth/admin/login.  A correct password on a
// non-admin account is answered with 403.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Auth.AuthenticateAdmin(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.startSession(c, http.StatusOK, u, "Welcome, Admin "+u.FirstName+"!")
}

// Logout handles GET /auth/logout by overwriting the cookie with an empty
// one that has already expired.  It needs no session.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.Cookie.session("", time.Now()))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out successfully"})
}

// Me handles GET /auth/me behind RequireSession.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return service.ErrAuth(service.MsgLoginRequired)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u})
}

func (h *AuthHandler) startSession(c echo.Context, status int, u model.User, message string) error {
	tok, err := h.Auth.IssueSession(u)
	if err != nil {
		return err
	}
	c.SetCookie(h.Cookie.session(tok.Token, tok.Exp))
	return c.JSON(status, echo.Map{"success": true, "message": message, "user": u})
}
