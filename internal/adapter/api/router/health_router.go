package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/pkg/metrics"
)

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
