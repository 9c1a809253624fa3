package repository

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

// ErrUnknownCategory is returned by product writes whose categoryId does not exist at commit time.
var ErrUnknownCategory = errors.BadRequest("Category does not exist", nil)

type ProductFilter struct {
	CategoryID string
	Status     string
	Search     string
}

// ProductRepository checks the product's category in the same transaction as Create and
// Update, so a concurrent category delete cannot leave a product pointing nowhere.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, pagination *utils.Pagination) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock writes stock and the status that follows from it as one update.
	UpdateStock(ctx context.Context, id string, stock int) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
