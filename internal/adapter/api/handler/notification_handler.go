package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
	"dukkan/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	user := middleware.CurrentUser(c)

	items, total, err := h.notificationUseCase.List(c.Request().Context(), user.ID, queryBool(c, "unread"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.Limit)
}

func (h *NotificationHandler) SendNotification(c echo.Context) error {
	var req usecase.SendNotificationInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	sent, err := h.notificationUseCase.Send(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]int{"sent": sent})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	n, err := h.notificationUseCase.MarkRead(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, n)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	count, err := h.notificationUseCase.MarkAllRead(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"updated": count})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	if err := h.notificationUseCase.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Notification deleted")
}
