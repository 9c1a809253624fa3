package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

// SetupWebSocketRouter mounts the notification stream. Browsers cannot set headers on
// upgrades, so the token travels in the query string.
func SetupWebSocketRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, wsHandler *handler.WebSocketHandler) {
	api.GET("/ws", wsHandler.HandleWebSocket, authMiddleware.QueryToken)
}
