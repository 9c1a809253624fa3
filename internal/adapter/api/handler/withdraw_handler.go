package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
	"dukkan/pkg/utils"
)

type WithdrawHandler struct {
	withdrawUseCase *usecase.WithdrawUseCase
}

func NewWithdrawHandler(withdrawUseCase *usecase.WithdrawUseCase) *WithdrawHandler {
	return &WithdrawHandler{
		withdrawUseCase: withdrawUseCase,
	}
}

func (h *WithdrawHandler) ListRequests(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.withdrawUseCase.List(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("status"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.Limit)
}

func (h *WithdrawHandler) CreateRequest(c echo.Context) error {
	var req usecase.ClaimWithdrawInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.withdrawUseCase.Claim(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, request)
}

func (h *WithdrawHandler) ResolveRequest(c echo.Context) error {
	var req usecase.ResolveWithdrawInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.withdrawUseCase.Resolve(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, request)
}
