package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupProductRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	productHandler := handler.GetProductHandler()
	categoryHandler := handler.GetCategoryHandler()

	api.GET("/categories", categoryHandler.ListCategories)
	categories := api.Group("/categories", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:id", productHandler.GetProduct)
	products := api.Group("/products", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	products.POST("", productHandler.CreateProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.PUT("/:id/stock", productHandler.UpdateStock)
	products.DELETE("/:id", productHandler.DeleteProduct)
}
