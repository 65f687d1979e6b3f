package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/auth"
)

// RefreshCookieName is the cookie carrying the refresh JWT.
const RefreshCookieName = "refreshToken"

// AccessTokenAuth admits requests with a valid Bearer access token and
// records the decoded userId as the caller. Token failures respond with
// a bare 401 body, bypassing the JSON error envelope — the established
// contract for this middleware.
func AccessTokenAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.String(http.StatusUnauthorized, "invalid token...")
			}
			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.String(http.StatusUnauthorized, "invalid token...")
			}
			SetCaller(c, userID)
			return next(c)
		}
	}
}

// RefreshTokenAuth admits requests whose refreshToken cookie holds a
// token with a valid signature and expiry. The handler behind this gate
// still compares the cookie value against the stored token; this gate
// only proves the cookie was signed by us and has not expired.
func RefreshTokenAuth(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(RefreshCookieName)
			if err != nil || cookie.Value == "" {
				return c.String(http.StatusUnauthorized, "invalid token...")
			}
			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				return c.String(http.StatusUnauthorized, "invalid token...")
			}
			SetCaller(c, userID)
			return next(c)
		}
	}
}
