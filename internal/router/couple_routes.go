package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/model"
)

// RegisterCouples wires the couple planning surface. Every route is
// couple only.
func RegisterCouples(e *echo.Echo, h *handler.CoupleHandler, jwtSecret string) {
	g := e.Group("/v1/couple")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCouple))

	g.GET("/profile", h.Profile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/progress", h.Progress)
	g.GET("/timeline", h.Timeline)
	g.GET("/bookings", h.ListBookings)
	g.GET("/favorites", h.ListFavorites)
}
