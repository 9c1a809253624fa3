package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupNotificationRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := api.Group("/notifications", authMiddleware.Authenticate)
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.POST("", notificationHandler.SendNotification, adminMiddleware.AdminOnly)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.PUT("/:id", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
}
