package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/auth"
	"github.com/minhokang/review-market/internal/session"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "sid"

// SessionAuth admits requests that present a valid signed session
// cookie resolving to an existing user. Any failure ends the request
// with 401 before the handler runs.
func SessionAuth(store session.Store, secret string, users auth.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return apperr.Authentication("Unauthorized")
			}
			sid, ok := session.Unsign(secret, cookie.Value)
			if !ok {
				return apperr.Authentication("Unauthorized")
			}
			ctx := c.Request().Context()
			userID, err := store.Get(ctx, sid)
			if err != nil {
				return apperr.Authentication("Unauthorized")
			}
			// The session may outlive the user row; re-resolve it.
			if _, err := users.FindByID(ctx, userID); err != nil {
				return apperr.Authentication("Unauthorized")
			}
			SetCaller(c, userID)
			return next(c)
		}
	}
}
