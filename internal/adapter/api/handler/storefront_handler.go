package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
)

// StorefrontHandler serves the storefront side of the app.
type StorefrontHandler struct {
	bannerUseCase  *usecase.BannerUseCase
	cartUseCase    *usecase.CartUseCase
	savedUseCase   *usecase.SavedProductUseCase
	settingUseCase *usecase.SettingUseCase
}

func NewStorefrontHandler(
	bannerUseCase *usecase.BannerUseCase,
	cartUseCase *usecase.CartUseCase,
	savedUseCase *usecase.SavedProductUseCase,
	settingUseCase *usecase.SettingUseCase,
) *StorefrontHandler {
	return &StorefrontHandler{
		bannerUseCase:  bannerUseCase,
		cartUseCase:    cartUseCase,
		savedUseCase:   savedUseCase,
		settingUseCase: settingUseCase,
	}
}

type saveProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// ListBanners shows inactive banners only to admins asking for all=true.
func (h *StorefrontHandler) ListBanners(c echo.Context) error {
	activeOnly := true
	if user := middleware.CurrentUser(c); user != nil && user.IsAdmin() && queryBool(c, "all") {
		activeOnly = false
	}

	banners, err := h.bannerUseCase.List(c.Request().Context(), activeOnly)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, banners)
}

func (h *StorefrontHandler) CreateBanner(c echo.Context) error {
	var req usecase.BannerInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	banner, err := h.bannerUseCase.Create(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, banner)
}

func (h *StorefrontHandler) UpdateBanner(c echo.Context) error {
	var req usecase.BannerInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	banner, err := h.bannerUseCase.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, banner)
}

func (h *StorefrontHandler) DeleteBanner(c echo.Context) error {
	if err := h.bannerUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Banner deleted")
}

func (h *StorefrontHandler) GetCart(c echo.Context) error {
	items, err := h.cartUseCase.List(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *StorefrontHandler) AddToCart(c echo.Context) error {
	var req usecase.AddCartItemInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.Add(c.Request().Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

func (h *StorefrontHandler) UpdateCartItem(c echo.Context) error {
	var req usecase.UpdateCartItemInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.Update(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *StorefrontHandler) RemoveCartItem(c echo.Context) error {
	if err := h.cartUseCase.Remove(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Item removed")
}

func (h *StorefrontHandler) ClearCart(c echo.Context) error {
	if err := h.cartUseCase.Clear(c.Request().Context(), middleware.CurrentUser(c).ID); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Cart cleared")
}

func (h *StorefrontHandler) ListSaved(c echo.Context) error {
	saved, err := h.savedUseCase.List(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, saved)
}

func (h *StorefrontHandler) SaveProduct(c echo.Context) error {
	var req saveProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	saved, err := h.savedUseCase.Save(c.Request().Context(), middleware.CurrentUser(c).ID, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, saved)
}

func (h *StorefrontHandler) UnsaveProduct(c echo.Context) error {
	if err := h.savedUseCase.Remove(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("productId")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Product removed from saved list")
}

func (h *StorefrontHandler) ListSettings(c echo.Context) error {
	settings, err := h.settingUseCase.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, settings)
}

func (h *StorefrontHandler) GetSetting(c echo.Context) error {
	setting, err := h.settingUseCase.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, setting)
}

func (h *StorefrontHandler) UpdateSetting(c echo.Context) error {
	var req usecase.SettingInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	setting, err := h.settingUseCase.Set(c.Request().Context(), c.Param("key"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, setting)
}
