package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/infrastructure/export"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/utils"
)

type OrderUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settingRepo  repository.SettingRepository
	ledger       repository.Ledger
	notifier     Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	settingRepo repository.SettingRepository,
	ledger repository.Ledger,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settingRepo:  settingRepo,
		ledger:       ledger,
		notifier:     notifier,
	}
}

type OrderCustomerInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Address  string `json:"address" validate:"required"`
	Province string `json:"province" validate:"required"`
	Notes    string `json:"notes"`
}

type OrderItemInput struct {
	ProductID    string   `json:"productId" validate:"required"`
	Quantity     int      `json:"quantity" validate:"required,min=1"`
	Color        string   `json:"color"`
	SellingPrice *float64 `json:"sellingPrice" validate:"omitempty,gte=0"`
}

type CreateOrderInput struct {
	Customer OrderCustomerInput `json:"customer" validate:"required"`
	Items    []OrderItemInput   `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func (in OrderCustomerInput) entity() entity.OrderCustomer {
	return entity.OrderCustomer{
		Name:     in.Name,
		Phone:    normalizePhone(in.Phone),
		Address:  in.Address,
		Province: in.Province,
		Notes:    in.Notes,
	}
}

func errPriceOutOfRange(name string) error {
	return errors.New("PRICE_OUT_OF_RANGE", fmt.Sprintf("Selling price for %s is outside the allowed range", name), http.StatusBadRequest, nil)
}

func (uc *OrderUseCase) buildItems(ctx context.Context, inputs []OrderItemInput) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.BadRequest("Product "+in.ProductID+" does not exist", err)
			}
			return nil, errors.Wrap("Failed to load product", err)
		}
		if product.Status == entity.ProductStatusInactive {
			return nil, errors.BadRequest("Product "+product.Name+" is not available", nil)
		}
		if in.Color != "" && len(product.Colors) > 0 && !contains(product.Colors, in.Color) {
			return nil, errors.BadRequest("Color "+in.Color+" is not offered for "+product.Name, nil)
		}

		selling := product.Price
		if in.SellingPrice != nil {
			selling = *in.SellingPrice
		}
		if !product.AcceptsSellingPrice(selling) {
			return nil, errPriceOutOfRange(product.Name)
		}

		items = append(items, entity.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			ImageURL:       product.ImageURL,
			Color:          in.Color,
			Quantity:       in.Quantity,
			WholesalePrice: product.Price,
			SellingPrice:   selling,
		})
	}
	return items, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Create prices the order, books it through the ledger and records the customer in the
// directory. A directory failure does not fail the order.
func (uc *OrderUseCase) Create(ctx context.Context, merchant *entity.User, input CreateOrderInput) (*entity.Order, error) {
	items, err := uc.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	customer := input.Customer.entity()
	fee, err := deliveryFee(ctx, uc.settingRepo, customer.Province)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:       generateUUID(),
		UserID:   merchant.ID,
		Customer: customer,
		Items:    items,
	}
	order.ApplyTotals(entity.PriceItems(items, fee))

	if err := uc.ledger.CreateOrder(ctx, order); err != nil {
		return nil, errors.Wrap("Failed to create order", err)
	}
	logger.Info("Order %s created by %s, profit %.2f", order.ID, merchant.ID, order.Profit)

	now := time.Now()
	record := &entity.Customer{
		ID:        generateUUID(),
		Name:      customer.Name,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Province:  customer.Province,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Upsert(ctx, record); err != nil {
		logger.Warn("Failed to record customer %s for order %s: %v", customer.Phone, order.ID, err)
	}
	return order, nil
}

// List returns the actor's own orders, or every order for admins.
func (uc *OrderUseCase) List(ctx context.Context, actor *entity.User, status string, pagination utils.Pagination) ([]*entity.Order, int64, error) {
	filter := repository.OrderFilter{Status: entity.OrderStatus(status)}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, errors.BadRequest("Unknown order status "+status, nil)
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}

	orders, total, err := uc.orderRepo.List(ctx, filter, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list orders", err)
	}
	return orders, total, nil
}

func (uc *OrderUseCase) Get(ctx context.Context, actor *entity.User, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// another merchant's order is reported as missing
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (uc *OrderUseCase) UpdateCustomer(ctx context.Context, id string, input OrderCustomerInput) (*entity.Order, error) {
	return uc.orderRepo.UpdateCustomer(ctx, id, input.entity())
}

func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, status string) (*entity.Order, error) {
	to := entity.OrderStatus(status)
	if !to.Valid() {
		return nil, errors.BadRequest("Unknown order status "+status, nil)
	}
	if to == entity.OrderWithdrawn {
		return nil, errors.New("INVALID_TRANSITION", "Orders are only marked withdrawn by a withdrawal request", http.StatusBadRequest, nil)
	}

	order, err := uc.ledger.TransitionOrder(ctx, id, to)
	if err != nil {
		return nil, errors.Wrap("Failed to update order status", err)
	}

	uc.notifier.NotifyUser(ctx, order.UserID, entity.NotificationOrder,
		"تحديث حالة الطلب",
		fmt.Sprintf("تم تغيير حالة طلب %s إلى %s", order.Customer.Name, statusLabel(to)))
	return order, nil
}

func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.ledger.DeleteOrder(ctx, id); err != nil {
		return errors.Wrap("Failed to delete order", err)
	}
	return nil
}

// Export writes every order matching status as an xlsx workbook.
func (uc *OrderUseCase) Export(ctx context.Context, w io.Writer, status string) error {
	filter := repository.OrderFilter{Status: entity.OrderStatus(status)}
	orders, _, err := uc.orderRepo.List(ctx, filter, nil)
	if err != nil {
		return errors.Wrap("Failed to load orders", err)
	}
	if err := export.WriteOrders(w, orders); err != nil {
		return errors.Internal("Failed to build export", err)
	}
	return nil
}

var statusLabels = map[entity.OrderStatus]string{
	entity.OrderPending:    "قيد الانتظار",
	entity.OrderProcessing: "قيد التجهيز",
	entity.OrderShipped:    "تم الشحن",
	entity.OrderDelivered:  "تم التوصيل",
	entity.OrderCompleted:  "مكتمل",
	entity.OrderRejected:   "مرفوض",
	entity.OrderCancelled:  "ملغي",
	entity.OrderWithdrawn:  "تم السحب",
}

func statusLabel(s entity.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
