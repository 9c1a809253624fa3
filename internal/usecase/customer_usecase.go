package usecase

import (
	"context"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

func (uc *CustomerUseCase) List(ctx context.Context, pagination utils.Pagination) ([]*entity.Customer, int64, error) {
	customers, total, err := uc.customerRepo.List(ctx, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list customers", err)
	}
	return customers, total, nil
}
