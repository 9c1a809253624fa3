package repository

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/utils"
)

type CustomerRepository interface {
	// Upsert keys the directory by phone.
	Upsert(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, pagination *utils.Pagination) ([]*entity.Customer, int64, error)
}
