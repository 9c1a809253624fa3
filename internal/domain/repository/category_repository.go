package repository

import (
	"context"

	"dukkan/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete removes the category unless a product still references it, in which case it
	// returns a CONFLICT error. The check and the delete happen atomically.
	Delete(ctx context.Context, id string) error
}
