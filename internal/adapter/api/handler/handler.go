package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"dukkan/internal/usecase"
)

// UseCases is everything the HTTP layer calls into.
type UseCases struct {
	Auth          *usecase.AuthUseCase
	Users         *usecase.UserUseCase
	Categories    *usecase.CategoryUseCase
	Products      *usecase.ProductUseCase
	Orders        *usecase.OrderUseCase
	Customers     *usecase.CustomerUseCase
	Withdrawals   *usecase.WithdrawUseCase
	Notifications *usecase.NotificationUseCase
	Banners       *usecase.BannerUseCase
	Cart          *usecase.CartUseCase
	SavedProducts *usecase.SavedProductUseCase
	Settings      *usecase.SettingUseCase
	Uploads       *usecase.UploadUseCase
	Stats         *usecase.StatsUseCase
	Advisor       *usecase.AdvisorUseCase
}

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	categoryHandler     *CategoryHandler
	productHandler      *ProductHandler
	orderHandler        *OrderHandler
	withdrawHandler     *WithdrawHandler
	notificationHandler *NotificationHandler
	storefrontHandler   *StorefrontHandler
	fileHandler         *FileHandler
	adminHandler        *AdminHandler
)

func Setup(uc UseCases) {
	authHandler = NewAuthHandler(uc.Auth)
	userHandler = NewUserHandler(uc.Users)
	categoryHandler = NewCategoryHandler(uc.Categories)
	productHandler = NewProductHandler(uc.Products)
	orderHandler = NewOrderHandler(uc.Orders, uc.Customers)
	withdrawHandler = NewWithdrawHandler(uc.Withdrawals)
	notificationHandler = NewNotificationHandler(uc.Notifications)
	storefrontHandler = NewStorefrontHandler(uc.Banners, uc.Cart, uc.SavedProducts, uc.Settings)
	fileHandler = NewFileHandler(uc.Uploads)
	adminHandler = NewAdminHandler(uc.Stats, uc.Advisor)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetWithdrawHandler() *WithdrawHandler {
	return withdrawHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetStorefrontHandler() *StorefrontHandler {
	return storefrontHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func queryBool(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}
