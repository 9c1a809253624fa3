package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	categories := NewCategoryUseCase(store.Categories)
	products := NewProductUseCase(store.Products, store.Categories)

	_, err := products.Create(ctx, ProductInput{Name: "قميص", Price: 5000, CategoryID: "missing"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	category, err := categories.Create(ctx, CategoryInput{Name: "ملابس"})
	require.NoError(t, err)

	_, err = products.Create(ctx, ProductInput{Name: "قميص", Price: 5000, MinPrice: ptr(9000.0), MaxPrice: ptr(7000.0), CategoryID: category.ID})
	assert.True(t, errors.Is(err, "INVALID_PRICE_RANGE"))

	product, err := products.Create(ctx, ProductInput{Name: "قميص", Price: 5000, Stock: 3, CategoryID: category.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)
	assert.NotNil(t, product.Colors)

	product, err = products.UpdateStock(ctx, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusOutOfStock, product.Status)

	product, err = products.UpdateStock(ctx, product.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, product.Status)

	_, err = products.UpdateStock(ctx, product.ID, -1)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	found, total, err := products.List(ctx, repository.ProductFilter{Search: "قميص"}, utils.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, product.ID, found[0].ID)

	assert.True(t, errors.Is(categories.Delete(ctx, category.ID), "CONFLICT"))
	require.NoError(t, products.Delete(ctx, product.ID))
	require.NoError(t, categories.Delete(ctx, category.ID))
}

func TestInactiveProductIgnoresStockChanges(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	addProduct(t, store, "p1", 1000, nil, nil)
	products := NewProductUseCase(store.Products, store.Categories)

	p, err := products.Update(ctx, "p1", ProductInput{Name: "x", Price: 1000, Stock: 2, CategoryID: "cat", Status: entity.ProductStatusInactive})
	require.NoError(t, err)
	require.Equal(t, entity.ProductStatusInactive, p.Status)

	p, err = products.UpdateStock(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusInactive, p.Status)
}

// vanishingCategories answers a lookup and then deletes the category, the way a second admin
// deleting it between the check and the product write would.
type vanishingCategories struct {
	repository.CategoryRepository
}

func (c vanishingCategories) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	category, err := c.CategoryRepository.GetByID(ctx, id)
	if err == nil {
		_ = c.CategoryRepository.Delete(ctx, id)
	}
	return category, err
}

func TestProductWriteLosesRaceWithCategoryDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	require.NoError(t, store.Categories.Create(ctx, &entity.Category{ID: "shoes", Name: "أحذية"}))
	products := NewProductUseCase(store.Products, vanishingCategories{store.Categories})

	_, err := products.Create(ctx, ProductInput{Name: "حذاء", Price: 9000, CategoryID: "shoes"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = store.Categories.GetByID(ctx, "shoes")
	assert.True(t, errors.IsNotFound(err))
	_, total, err := store.Products.List(ctx, repository.ProductFilter{CategoryID: "shoes"}, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	addProduct(t, store, "p1", 1000, nil, nil)
	require.NoError(t, store.Categories.Create(ctx, &entity.Category{ID: "bags", Name: "حقائب"}))

	_, err = products.Update(ctx, "p1", ProductInput{Name: "حقيبة", Price: 1000, CategoryID: "bags"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	stored, err := store.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "cat", stored.CategoryID)
}

func TestCartMergesSameLine(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	addProduct(t, store, "p1", 1000, nil, nil)
	cart := NewCartUseCase(store.Carts, store.Products)

	first, err := cart.Add(ctx, "u1", AddCartItemInput{ProductID: "p1", Quantity: 1, Color: "أحمر"})
	require.NoError(t, err)
	second, err := cart.Add(ctx, "u1", AddCartItemInput{ProductID: "p1", Quantity: 2, Color: "أحمر"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	_, err = cart.Add(ctx, "u1", AddCartItemInput{ProductID: "p1", Quantity: 1, Color: "أسود"})
	require.NoError(t, err)
	_, err = cart.Add(ctx, "u1", AddCartItemInput{ProductID: "p1", Quantity: 1, Color: "بنفسجي"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	items, err := cart.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = cart.Update(ctx, "u2", first.ID, UpdateCartItemInput{Quantity: 5})
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(cart.Remove(ctx, "u2", first.ID)))

	require.NoError(t, cart.Clear(ctx, "u1"))
	items, err = cart.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSavedProductsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	addProduct(t, store, "p1", 1000, nil, nil)
	saved := NewSavedProductUseCase(store.SavedProducts, store.Products)

	a, err := saved.Save(ctx, "u1", "p1")
	require.NoError(t, err)
	b, err := saved.Save(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	list, err := saved.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, saved.Remove(ctx, "u1", "p1"))
	assert.True(t, errors.IsNotFound(saved.Remove(ctx, "u1", "p1")))
}

func TestBannersAndSettings(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	banners := NewBannerUseCase(store.Banners)
	settings := NewSettingUseCase(store.Settings)

	_, err := banners.Create(ctx, BannerInput{Title: "b", ImageURL: "https://cdn/b.png", SortOrder: 2})
	require.NoError(t, err)
	hidden, err := banners.Create(ctx, BannerInput{Title: "a", ImageURL: "https://cdn/a.png", SortOrder: 1, IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := banners.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	all, err := banners.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, hidden.ID, all[0].ID)

	_, err = settings.Set(ctx, entity.DeliveryPriceKey("أربيل"), SettingInput{Value: "abc"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	s, err := settings.Set(ctx, entity.DeliveryPriceKey("أربيل"), SettingInput{Value: "6000"})
	require.NoError(t, err)
	assert.Equal(t, entity.SettingCategoryDelivery, s.Category)

	fee, err := deliveryFee(ctx, store.Settings, "أربيل")
	require.NoError(t, err)
	assert.Equal(t, 6000.0, fee)

	_, err = settings.Set(ctx, "support_phone", SettingInput{Value: "0770", Category: entity.SettingCategoryContact})
	require.NoError(t, err)
	contact, err := settings.List(ctx, entity.SettingCategoryContact)
	require.NoError(t, err)
	assert.Len(t, contact, 1)
}
