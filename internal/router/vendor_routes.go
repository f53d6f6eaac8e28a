package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/model"
)

// RegisterVendors wires the vendor directory. The directory is public
// and cached; the dashboard requires a vendor token, profile updates go
// through the ownership predicate and verification is admin only.
func RegisterVendors(e *echo.Echo, h *handler.VendorHandler, cp *handler.CoupleHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/vendors")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("", h.List)
	pub.GET("/categories", h.Categories)
	pub.GET("/:id", h.GetByID)

	me := e.Group("/v1/vendors/dashboard")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(model.RoleVendor))
	me.GET("/profile", h.MyProfile)

	mgmt := e.Group("/v1/vendors")
	mgmt.Use(middleware.JWTAuth(jwtSecret))
	mgmt.Use(middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
	mgmt.PUT("/:id", h.Update)

	admin := e.Group("/v1/vendors")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.PATCH("/:id/verify", h.Verify)

	fav := e.Group("/v1/vendors/:id/favorites")
	fav.Use(middleware.JWTAuth(jwtSecret))
	fav.Use(middleware.RequireRole(model.RoleCouple))
	fav.POST("", cp.FavoriteVendor)
	fav.DELETE("", cp.UnfavoriteVendor)
}
