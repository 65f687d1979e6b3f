// Package router wires HTTP routes to handlers and the middleware
// gates in front of them.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/handler"
)

// Deps collects everything route registration needs. Middleware fields
// hold already-constructed gates so this package stays free of storage
// and crypto concerns.
type Deps struct {
	Auth     *handler.AuthHandler
	OAuth    *handler.OAuthHandler
	Products *handler.ProductHandler
	Reviews  *handler.ReviewHandler

	SessionAuth echo.MiddlewareFunc // session cookie gate
	AccessAuth  echo.MiddlewareFunc // bearer access-token gate
	RefreshAuth echo.MiddlewareFunc // refresh-cookie gate
	ReviewOwner echo.MiddlewareFunc // review ownership gate
	LoginLimit  echo.MiddlewareFunc // rate limit for credential endpoints
}

// Register maps the full endpoint surface.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Registration and the two login modes.
	e.POST("/users", d.Auth.Register, d.LoginLimit)
	e.POST("/login", d.Auth.Login, d.LoginLimit)
	e.POST("/session-login", d.Auth.SessionLogin, d.LoginLimit)
	e.POST("/session-logout", d.Auth.SessionLogout)

	// Token refresh requires a valid refresh cookie before the handler
	// compares it against the stored value.
	e.POST("/token/refresh", d.Auth.Refresh, d.RefreshAuth)

	e.GET("/users/me", d.Auth.Me, d.AccessAuth)

	if d.OAuth != nil {
		e.GET("/auth/google", d.OAuth.GoogleLogin)
		e.GET("/auth/google/callback", d.OAuth.GoogleCallback)
	}

	products := e.Group("/products")
	products.POST("", d.Products.Create, d.SessionAuth)
	products.GET("/:id", d.Products.Get)

	reviews := e.Group("/reviews")
	reviews.POST("", d.Reviews.Create, d.AccessAuth)
	reviews.GET("", d.Reviews.GetAll)
	reviews.GET("/:id", d.Reviews.Get)
	// Mutations pass the access-token gate, then the ownership gate.
	reviews.PUT("/:id", d.Reviews.Update, d.AccessAuth, d.ReviewOwner)
	reviews.DELETE("/:id", d.Reviews.Delete, d.AccessAuth, d.ReviewOwner)
}
