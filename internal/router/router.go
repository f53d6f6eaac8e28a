// Package router maps URL paths onto handlers and decides which routes
// sit behind the JWT and role middleware. Public browse routes may carry
// the Redis response cache; everything else is served fresh.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and no
// handler state.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login, refresh
// and logout run without the JWT middleware; /v1/me requires a live
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout validates its own credentials so an expired access token can
	// still end a session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
