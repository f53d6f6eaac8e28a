package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
)

// RegisterBookings wires the booking endpoints. The availability probes
// are public so couples can check dates before signing up; everything
// else requires a token, with per-record access decided in the handler.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	e.GET("/v1/bookings/venues/:venueId/availability", h.VenueAvailability)
	e.GET("/v1/bookings/vendors/:vendorId/availability", h.VendorAvailability)

	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/stats", h.Stats)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.Delete)
}
