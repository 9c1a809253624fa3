package repository

import (
	"context"

	"dukkan/internal/domain/entity"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Banner, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id string) error
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	Find(ctx context.Context, userID, productID, color string) (*entity.CartItem, error)
	Save(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, userID string) error
}

type SavedProductRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.SavedProduct, error)
	Find(ctx context.Context, userID, productID string) (*entity.SavedProduct, error)
	Create(ctx context.Context, saved *entity.SavedProduct) error
	Delete(ctx context.Context, userID, productID string) error
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.AppSetting, error)
	List(ctx context.Context, category string) ([]*entity.AppSetting, error)
	Set(ctx context.Context, setting *entity.AppSetting) error
}
