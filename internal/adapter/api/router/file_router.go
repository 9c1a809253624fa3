package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupFileRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	fileHandler := handler.GetFileHandler()

	api.POST("/uploads", fileHandler.UploadFile, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}
