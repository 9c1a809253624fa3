package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/domain/repository"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
	"dukkan/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type userIDRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	filter := repository.UserFilter{Role: c.QueryParam("role")}
	if v := c.QueryParam("banned"); v != "" {
		banned := queryBool(c, "banned")
		filter.Banned = &banned
	}

	users, total, err := h.userUseCase.List(c.Request().Context(), filter, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.Limit)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.Get(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req usecase.UpdateUserInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) BanUser(c echo.Context) error {
	var req usecase.BanInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Ban(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UnbanUser(c echo.Context) error {
	var req userIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Unban(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ForceLogout(c echo.Context) error {
	var req userIDRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if _, err := h.userUseCase.ForceLogout(c.Request().Context(), req.UserID); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "All sessions revoked")
}
