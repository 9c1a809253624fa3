package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
)

func SetupAuthRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, limiter usecase.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := api.Group("/auth")
	public := auth.Group("", middleware.RateLimit(limiter, middleware.ActionAuth))
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/check-user", authHandler.CheckUser)
	public.POST("/send-reset-code", authHandler.SendResetCode)
	public.POST("/verify-reset-code", authHandler.VerifyResetCode)
	public.POST("/reset-password", authHandler.ResetPassword)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
