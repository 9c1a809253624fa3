package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type resetPasswordRequest struct {
	Phone       string `json:"phone" validate:"required"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *AuthHandler) CheckUser(c echo.Context) error {
	var req phoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	exists, err := h.authUseCase.CheckUser(c.Request().Context(), req.Phone)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"exists": exists})
}

func (h *AuthHandler) SendResetCode(c echo.Context) error {
	var req phoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.SendResetCode(c.Request().Context(), req.Phone); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Reset code sent")
}

func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.VerifyResetCode(c.Request().Context(), req.Phone, req.Code); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"valid": true})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.ResetPassword(c.Request().Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Password updated")
}

func (h *AuthHandler) Me(c echo.Context) error {
	return response.Success(c, middleware.CurrentUser(c))
}
