package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *HealthHandler
	Catalog           *CatalogHandler
	ProductManagement *ProductManagementHandler
	Order             *OrderHandler
}

// SetupRoutes registers all routes.
func SetupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	RegisterValidation()

	api := router.Group("/api")
	api.GET("/health", handlers.Health.GetHealth)

	// Catalog (public)
	api.GET("/categories/", handlers.Catalog.ListCategories)
	api.GET("/products/", handlers.Catalog.ListProducts)
	api.GET("/products/featured/", handlers.Catalog.FeaturedProducts)
	api.GET("/products/categories/", handlers.Catalog.ListCategories)
	api.GET("/products/:slug/", jwtMiddleware.Optional(), handlers.Catalog.GetProduct)

	// Catalog management
	manage := api.Group("/products")
	manage.Use(jwtMiddleware.Handle())
	{
		manage.POST("/create/", handlers.ProductManagement.CreateProduct)
		manage.PUT("/:slug/update/", handlers.ProductManagement.UpdateProduct)
		manage.PATCH("/:slug/update/", handlers.ProductManagement.UpdateProduct)
		manage.DELETE("/:slug/delete/", handlers.ProductManagement.DeleteProduct)
		manage.POST("/:slug/image/", handlers.ProductManagement.UploadImage)
	}

	// Orders (public)
	api.POST("/orders/", handlers.Order.CreateOrder)
	api.POST("/create-order/", handlers.Order.CreateOrder)
	api.GET("/orders/:id/", handlers.Order.GetOrder)
}
