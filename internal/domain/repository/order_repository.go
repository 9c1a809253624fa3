package repository

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/utils"
)

type OrderFilter struct {
	UserID string
	Status entity.OrderStatus
}

// OrderRepository covers reads and non-financial edits. Anything that changes an order's
// status or existence goes through Ledger.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List returns every match when pagination is nil.
	List(ctx context.Context, filter OrderFilter, pagination *utils.Pagination) ([]*entity.Order, int64, error)
	UpdateCustomer(ctx context.Context, id string, customer entity.OrderCustomer) (*entity.Order, error)
}
