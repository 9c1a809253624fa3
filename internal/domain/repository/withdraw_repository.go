package repository

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/utils"
)

type WithdrawFilter struct {
	UserID string
	Status string
}

type WithdrawRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WithdrawRequest, error)
	List(ctx context.Context, filter WithdrawFilter, pagination *utils.Pagination) ([]*entity.WithdrawRequest, int64, error)
}
