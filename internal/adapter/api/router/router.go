package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
)

// Setup mounts every route. handler.Setup must have run first.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	limiter usecase.RateLimiter,
	wsHandler *handler.WebSocketHandler,
	healthHandler *handler.HealthHandler,
) {
	api := e.Group("/api", middleware.RateLimit(limiter, middleware.ActionAPI))

	SetupAuthRouter(api, authMiddleware, limiter)
	SetupUserRouter(api, authMiddleware, adminMiddleware)
	SetupProductRouter(api, authMiddleware, adminMiddleware)
	SetupOrderRouter(api, authMiddleware, adminMiddleware)
	SetupWithdrawRouter(api, authMiddleware, adminMiddleware)
	SetupNotificationRouter(api, authMiddleware, adminMiddleware)
	SetupStorefrontRouter(api, authMiddleware, adminMiddleware)
	SetupFileRouter(api, authMiddleware, adminMiddleware)
	SetupAdminRouter(api, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(api, authMiddleware, wsHandler)
	SetupHealthRouter(e, healthHandler)
}
