package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/auth"
	"github.com/minhokang/review-market/internal/middleware"
	"github.com/minhokang/review-market/internal/model"
	"github.com/minhokang/review-market/internal/session"
)

// refreshPath scopes the rotated refresh cookie to the one endpoint
// that consumes it.
const refreshPath = "/token/refresh"

// AuthHandler bundles dependencies for registration, the two login
// modes and token refresh.
type AuthHandler struct {
	Svc           *auth.Service
	Sessions      session.Store
	SessionSecret string
}

func NewAuthHandler(svc *auth.Service, sessions session.Store, sessionSecret string) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions, SessionSecret: sessionSecret}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginResp struct {
	model.PublicUser
	AccessToken string `json:"accessToken"`
}
type refreshResp struct {
	AccessToken string `json:"accessToken"`
}

// Register creates a user. POST /users.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("email, name, password 가 모두 필요합니다.", nil)
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return apperr.Validation("email, name, password 가 모두 필요합니다.", nil)
	}
	user, err := h.Svc.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and hands out both consumption modes at
// once: the access token in the body for API clients and the refresh
// token in an http-only cookie for browsers. POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	pair, err := h.Svc.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return err
	}
	setRefreshCookie(c, pair.RefreshToken, "")
	return c.JSON(http.StatusOK, loginResp{PublicUser: user, AccessToken: pair.AccessToken})
}

// SessionLogin verifies credentials and establishes a server-side
// session instead of issuing tokens. POST /session-login.
func (h *AuthHandler) SessionLogin(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	sid, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		return apperr.Server("세션 생성 중 오류가 발생했습니다")
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Sign(h.SessionSecret, sid),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	})
	return c.JSON(http.StatusOK, user)
}

// SessionLogout destroys the caller's session. POST /session-logout.
func (h *AuthHandler) SessionLogout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if sid, ok := session.Unsign(h.SessionSecret, cookie.Value); ok {
			_ = h.Sessions.Destroy(c.Request().Context(), sid)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		MaxAge:   -1,
		Path:     "/",
	})
	return c.NoContent(http.StatusNoContent)
}

// Refresh rotates the token pair. The refresh-cookie gate has already
// verified the cookie's signature and expiry and resolved the caller;
// the service still compares the presented value against the stored one
// so a superseded token is rejected even when its signature is valid.
// POST /token/refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return apperr.Authentication("Unauthorized")
	}
	cookie, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil {
		return apperr.Authentication("Unauthorized")
	}
	pair, err := h.Svc.Refresh(c.Request().Context(), caller.UserID, cookie.Value)
	if err != nil {
		return err
	}
	setRefreshCookie(c, pair.RefreshToken, refreshPath)
	return c.JSON(http.StatusOK, refreshResp{AccessToken: pair.AccessToken})
}

// Me returns the authenticated caller's public view. GET /users/me.
func (h *AuthHandler) Me(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return apperr.Authentication("Unauthorized")
	}
	user, err := h.Svc.GetByID(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func bindLogin(c echo.Context) (loginReq, error) {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return loginReq{}, apperr.Validation("email, password 가 모두 필요합니다.", nil)
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return loginReq{}, apperr.Validation("email, password 가 모두 필요합니다.", nil)
	}
	return req, nil
}

func setRefreshCookie(c echo.Context, token, path string) {
	cookie := &http.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	if path != "" {
		cookie.Path = path
	}
	c.SetCookie(cookie)
}
