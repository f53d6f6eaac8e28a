package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/model"
)

// RegisterVenues wires the venue catalog. Browsing is public and cached;
// management requires a vendor or admin token and favorites a couple
// token.
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler, cp *handler.CoupleHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/venues")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("", h.List)
	pub.GET("/types", h.Types)
	pub.GET("/:id", h.GetByID)

	mgmt := e.Group("/v1/venues")
	mgmt.Use(middleware.JWTAuth(jwtSecret))
	mgmt.Use(middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
	mgmt.POST("", h.Create)
	mgmt.PUT("/:id", h.Update)
	mgmt.DELETE("/:id", h.Delete)

	fav := e.Group("/v1/venues/:id/favorites")
	fav.Use(middleware.JWTAuth(jwtSecret))
	fav.Use(middleware.RequireRole(model.RoleCouple))
	fav.POST("", cp.FavoriteVenue)
	fav.DELETE("", cp.UnfavoriteVenue)
}
