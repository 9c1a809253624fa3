package router

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
)

func SetupStorefrontRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	h := handler.GetStorefrontHandler()

	api.GET("/banners", h.ListBanners, authMiddleware.OptionalAuth)
	banners := api.Group("/banners", authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	banners.POST("", h.CreateBanner)
	banners.PUT("/:id", h.UpdateBanner)
	banners.DELETE("/:id", h.DeleteBanner)

	cart := api.Group("/cart", authMiddleware.Authenticate)
	cart.GET("", h.GetCart)
	cart.POST("", h.AddToCart)
	cart.DELETE("", h.ClearCart)
	cart.PUT("/:id", h.UpdateCartItem)
	cart.DELETE("/:id", h.RemoveCartItem)

	saved := api.Group("/saved-products", authMiddleware.Authenticate)
	saved.GET("", h.ListSaved)
	saved.POST("", h.SaveProduct)
	saved.DELETE("/:productId", h.UnsaveProduct)

	api.GET("/settings", h.ListSettings)
	api.GET("/settings/:key", h.GetSetting)
	api.PUT("/settings/:key", h.UpdateSetting, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}
