package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupWithdrawRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	withdrawHandler := handler.GetWithdrawHandler()

	withdrawals := api.Group("/withdraw-requests", authMiddleware.Authenticate)
	withdrawals.GET("", withdrawHandler.ListRequests)
	withdrawals.POST("", withdrawHandler.CreateRequest)
	withdrawals.PUT("/:id", withdrawHandler.ResolveRequest, adminMiddleware.AdminOnly)
	withdrawals.PATCH("/:id/status", withdrawHandler.ResolveRequest, adminMiddleware.AdminOnly)
}
