package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupUserRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)

	admin := users.Group("", adminMiddleware.AdminOnly)
	admin.GET("", userHandler.ListUsers)
	admin.POST("/ban", userHandler.BanUser)
	admin.POST("/unban", userHandler.UnbanUser)
	admin.POST("/force-logout", userHandler.ForceLogout)
}
