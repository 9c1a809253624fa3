package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/usecase"
	"dukkan/pkg/response"
	"dukkan/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandler struct {
	orderUseCase    *usecase.OrderUseCase
	customerUseCase *usecase.CustomerUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase, customerUseCase *usecase.CustomerUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase:    orderUseCase,
		customerUseCase: customerUseCase,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.List(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("status"), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.Limit)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req usecase.CreateOrderInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.Create(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.Get(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	var req usecase.OrderCustomerInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateCustomer(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req usecase.UpdateStatusInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	if err := h.orderUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Order deleted")
}

// ExportOrders streams the matching orders as an xlsx download.
func (h *OrderHandler) ExportOrders(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.orderUseCase.Export(c.Request().Context(), &buf, c.QueryParam("status")); err != nil {
		return response.Error(c, err)
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *OrderHandler) ListCustomers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	customers, total, err := h.customerUseCase.List(c.Request().Context(), pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, customers, total, pagination.Page, pagination.Limit)
}
