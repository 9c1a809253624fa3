package usecase

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

type BannerUseCase struct {
	bannerRepo repository.BannerRepository
}

func NewBannerUseCase(bannerRepo repository.BannerRepository) *BannerUseCase {
	return &BannerUseCase{bannerRepo: bannerRepo}
}

type BannerInput struct {
	Title     string `json:"title" validate:"required"`
	ImageURL  string `json:"imageUrl" validate:"required,url"`
	Link      string `json:"link"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

func (uc *BannerUseCase) List(ctx context.Context, activeOnly bool) ([]*entity.Banner, error) {
	banners, err := uc.bannerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap("Failed to list banners", err)
	}
	return banners, nil
}

func (uc *BannerUseCase) Create(ctx context.Context, input BannerInput) (*entity.Banner, error) {
	now := time.Now()
	banner := &entity.Banner{
		ID:        generateUUID(),
		Title:     input.Title,
		ImageURL:  input.ImageURL,
		Link:      input.Link,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive == nil || *input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.bannerRepo.Create(ctx, banner); err != nil {
		return nil, errors.Wrap("Failed to create banner", err)
	}
	return banner, nil
}

func (uc *BannerUseCase) Update(ctx context.Context, id string, input BannerInput) (*entity.Banner, error) {
	banner, err := uc.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = input.Title
	banner.ImageURL = input.ImageURL
	banner.Link = input.Link
	banner.SortOrder = input.SortOrder
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := uc.bannerRepo.Update(ctx, banner); err != nil {
		return nil, errors.Wrap("Failed to update banner", err)
	}
	return banner, nil
}

func (uc *BannerUseCase) Delete(ctx context.Context, id string) error {
	return uc.bannerRepo.Delete(ctx, id)
}

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type AddCartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Color     string `json:"color"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (uc *CartUseCase) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap("Failed to load cart", err)
	}
	return items, nil
}

// Add merges into an existing line for the same product and color.
func (uc *CartUseCase) Add(ctx context.Context, userID string, input AddCartItemInput) (*entity.CartItem, error) {
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Product does not exist", err)
		}
		return nil, errors.Wrap("Failed to load product", err)
	}
	if input.Color != "" && len(product.Colors) > 0 && !contains(product.Colors, input.Color) {
		return nil, errors.BadRequest("Color "+input.Color+" is not offered for "+product.Name, nil)
	}

	item, err := uc.cartRepo.Find(ctx, userID, input.ProductID, input.Color)
	switch {
	case err == nil:
		item.Quantity += input.Quantity
	case errors.IsNotFound(err):
		item = &entity.CartItem{
			ID:        generateUUID(),
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Color:     input.Color,
			CreatedAt: time.Now(),
		}
	default:
		return nil, errors.Wrap("Failed to load cart", err)
	}

	if err := uc.cartRepo.Save(ctx, item); err != nil {
		return nil, errors.Wrap("Failed to save cart item", err)
	}
	return item, nil
}

func (uc *CartUseCase) owned(ctx context.Context, userID, id string) (*entity.CartItem, error) {
	item, err := uc.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, errors.NotFound("Cart item", nil)
	}
	return item, nil
}

func (uc *CartUseCase) Update(ctx context.Context, userID, id string, input UpdateCartItemInput) (*entity.CartItem, error) {
	item, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.Quantity = input.Quantity
	if err := uc.cartRepo.Save(ctx, item); err != nil {
		return nil, errors.Wrap("Failed to save cart item", err)
	}
	return item, nil
}

func (uc *CartUseCase) Remove(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.cartRepo.Delete(ctx, id)
}

func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	if err := uc.cartRepo.Clear(ctx, userID); err != nil {
		return errors.Wrap("Failed to clear cart", err)
	}
	return nil
}

type SavedProductUseCase struct {
	savedRepo   repository.SavedProductRepository
	productRepo repository.ProductRepository
}

func NewSavedProductUseCase(savedRepo repository.SavedProductRepository, productRepo repository.ProductRepository) *SavedProductUseCase {
	return &SavedProductUseCase{
		savedRepo:   savedRepo,
		productRepo: productRepo,
	}
}

func (uc *SavedProductUseCase) List(ctx context.Context, userID string) ([]*entity.SavedProduct, error) {
	saved, err := uc.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap("Failed to load saved products", err)
	}
	return saved, nil
}

// Save is idempotent: saving twice returns the first record.
func (uc *SavedProductUseCase) Save(ctx context.Context, userID, productID string) (*entity.SavedProduct, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Product does not exist", err)
		}
		return nil, errors.Wrap("Failed to load product", err)
	}

	existing, err := uc.savedRepo.Find(ctx, userID, productID)
	if err == nil {
		return existing, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrap("Failed to load saved products", err)
	}

	saved := &entity.SavedProduct{
		ID:        generateUUID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	if err := uc.savedRepo.Create(ctx, saved); err != nil {
		return nil, errors.Wrap("Failed to save product", err)
	}
	return saved, nil
}

func (uc *SavedProductUseCase) Remove(ctx context.Context, userID, productID string) error {
	return uc.savedRepo.Delete(ctx, userID, productID)
}
