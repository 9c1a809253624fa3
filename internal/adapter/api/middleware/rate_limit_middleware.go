package middleware

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"dukkan/internal/usecase"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/response"
)

const (
	ActionAPI  = "api"
	ActionAuth = "auth"
)

// RateLimit counts requests per client IP under action. Limits live in the shared cache, so
// they hold across instances.
func RateLimit(limiter usecase.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, wait, err := limiter.Allow(c.Request().Context(), ip, action)
			if err != nil {
				logger.Warn("Rate limiter unavailable for %s: %v", ip, err)
				return next(c)
			}
			if !ok {
				logger.Warn("Rate limit hit for %s on %s", ip, action)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())))
				return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded, retry in %d seconds", int(wait.Seconds()))))
			}

			return next(c)
		}
	}
}
