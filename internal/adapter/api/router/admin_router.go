package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupAdminRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := api.Group("/admin", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("/stats", adminHandler.GetDashboardStats)

	ai := api.Group("/ai", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	ai.POST("/:kind", adminHandler.Advise)
}
