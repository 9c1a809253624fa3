package usecase

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap("Failed to list categories", err)
	}
	return categories, nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	now := time.Now()
	category := &entity.Category{
		ID:          generateUUID(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap("Failed to create category", err)
	}
	return category, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap("Failed to update category", err)
	}
	return category, nil
}

// Delete fails with CONFLICT while any product still points at the category.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.categoryRepo.Delete(ctx, id)
}
