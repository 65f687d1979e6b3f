package middleware

// identity.go normalizes the two authentication modes (server-side
// session, signed token) into one caller value. Whichever gate admitted
// the request stores a Caller under a single context key; downstream
// authorization reads that one type instead of probing per-mode fields.

import "github.com/labstack/echo/v4"

const callerKey = "caller"

// Caller is the resolved identity of an authenticated request.
type Caller struct {
	UserID uint64
}

// SetCaller attaches the resolved identity to the request context.
func SetCaller(c echo.Context, userID uint64) {
	c.Set(callerKey, Caller{UserID: userID})
}

// CallerFrom returns the identity stored by an auth gate, if any ran.
func CallerFrom(c echo.Context) (Caller, bool) {
	v, ok := c.Get(callerKey).(Caller)
	return v, ok && v.UserID != 0
}
