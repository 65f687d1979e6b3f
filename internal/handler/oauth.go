package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/auth"
	"github.com/minhokang/review-market/internal/middleware"
	"github.com/minhokang/review-market/internal/session"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthHandler is the Google OAuth groundwork: it hands out the consent
// URL and, on callback, exchanges the code, resolves the Google account
// to a local user and establishes a session for it.
type OAuthHandler struct {
	Config        *oauth2.Config
	Svc           *auth.Service
	Sessions      session.Store
	SessionSecret string
}

func NewOAuthHandler(clientID, clientSecret, redirectURL string, svc *auth.Service, sessions session.Store, sessionSecret string) *OAuthHandler {
	return &OAuthHandler{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		Svc:           svc,
		Sessions:      sessions,
		SessionSecret: sessionSecret,
	}
}

// GoogleLogin returns the consent URL and a state value for CSRF
// protection. GET /auth/google.
func (h *OAuthHandler) GoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	return c.JSON(http.StatusOK, echo.Map{
		"authUrl": h.Config.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":   state,
	})
}

type googleUserinfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, fetches the
// account's userinfo and logs the matching local user in via session.
// GET /auth/google/callback.
func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return apperr.Validation("code is required", nil)
	}
	ctx := c.Request().Context()

	token, err := h.Config.Exchange(ctx, code)
	if err != nil {
		return apperr.Authentication("invalid authorization code")
	}

	resp, err := h.Config.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return apperr.Server("failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return apperr.Server("failed to decode userinfo")
	}
	if info.Name == "" {
		info.Name = info.Email
	}

	user, err := h.Svc.EnsureOAuthUser(ctx, info.Email, info.Name)
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
