package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupOrderRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := api.Group("/orders", authMiddleware.Authenticate)
	orders.GET("", orderHandler.ListOrders)
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("/export", orderHandler.ExportOrders, adminMiddleware.AdminOnly)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PUT("/:id", orderHandler.UpdateOrder, adminMiddleware.AdminOnly)
	orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus, adminMiddleware.AdminOnly)
	orders.DELETE("/:id", orderHandler.DeleteOrder, adminMiddleware.AdminOnly)

	api.GET("/customers", orderHandler.ListCustomers, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}
