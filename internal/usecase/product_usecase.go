package usecase

import (
	"context"
	"net/http"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ProductInput struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description"`
	Price            float64  `json:"price" validate:"gte=0"`
	MinPrice         *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice         *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
	Stock            int      `json:"stock" validate:"gte=0"`
	SKU              string   `json:"sku"`
	ImageURL         string   `json:"imageUrl" validate:"omitempty,url"`
	AdditionalImages []string `json:"additionalImages" validate:"omitempty,dive,url"`
	Colors           []string `json:"colors"`
	CategoryID       string   `json:"categoryId" validate:"required"`
	Status           string   `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
}

func (uc *ProductUseCase) apply(ctx context.Context, product *entity.Product, input ProductInput) error {
	if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.IsNotFound(err) {
			return errors.BadRequest("Category does not exist", err)
		}
		return errors.Wrap("Failed to load category", err)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.MinPrice = input.MinPrice
	product.MaxPrice = input.MaxPrice
	product.Stock = input.Stock
	product.SKU = input.SKU
	product.ImageURL = input.ImageURL
	product.AdditionalImages = nonNil(input.AdditionalImages)
	product.Colors = nonNil(input.Colors)
	product.CategoryID = input.CategoryID
	product.Status = input.Status
	if product.Status == "" {
		product.Status = entity.ProductStatusActive
	}

	if !product.PriceRangeValid() {
		return errors.New("INVALID_PRICE_RANGE", "minPrice must not exceed maxPrice", http.StatusBadRequest, nil)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, pagination utils.Pagination) ([]*entity.Product, int64, error) {
	products, total, err := uc.productRepo.List(ctx, filter, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list products", err)
	}
	return products, total, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) Create(ctx context.Context, input ProductInput) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:        generateUUID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap("Failed to create product", err)
	}
	return product, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap("Failed to update product", err)
	}
	return product, nil
}

// UpdateStock sets the stock count. The status follows it, see entity.Product.SetStock.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, stock int) (*entity.Product, error) {
	if stock < 0 {
		return nil, errors.BadRequest("Stock cannot be negative", nil)
	}

	return uc.productRepo.UpdateStock(ctx, id, stock)
}

func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}
