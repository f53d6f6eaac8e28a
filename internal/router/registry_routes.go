package router

import (
	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/handler"
	"github.com/aurora-nuptials/marketplace/internal/middleware"
	"github.com/aurora-nuptials/marketplace/internal/model"
)

// RegisterRegistry wires the gift registry. Guests reach the public view
// and the purchase endpoint without an account; management is couple
// only.
func RegisterRegistry(e *echo.Echo, h *handler.RegistryHandler, jwtSecret string) {
	e.GET("/v1/registry/categories", h.Categories)
	e.GET("/v1/registry/public/:coupleId", h.Public)
	e.POST("/v1/registry/items/:itemId/purchase", h.Purchase)

	g := e.Group("/v1/registry")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCouple))
	g.GET("", h.Get)
	g.GET("/stats", h.Stats)
	g.POST("/items", h.AddItem)
	g.PUT("/items/:id", h.UpdateItem)
	g.DELETE("/items/:id", h.DeleteItem)
}
