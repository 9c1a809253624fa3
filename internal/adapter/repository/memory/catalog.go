package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type categoryRepo struct{ *db }

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[category.ID] = copyOf(category)
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return copyOf(c), nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, copyOf(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return errors.NotFound("Category", nil)
	}
	category.UpdatedAt = r.now()
	r.categories[category.ID] = copyOf(category)
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return errors.NotFound("Category", nil)
	}
	for _, p := range r.products {
		if p.CategoryID == id {
			return errors.Conflict("Category still has products")
		}
	}
	delete(r.categories, id)
	return nil
}

type productRepo struct{ *db }

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[product.CategoryID]; !ok {
		return repository.ErrUnknownCategory
	}
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return copyProduct(p), nil
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*entity.Product
	for _, p := range r.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, copyProduct(p))
	}
	items, total := page(out, func(p *entity.Product) time.Time { return p.CreatedAt }, pagination)
	return items, total, nil
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	if _, ok := r.categories[product.CategoryID]; !ok {
		return repository.ErrUnknownCategory
	}
	product.UpdatedAt = r.now()
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, stock int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	p.SetStock(stock)
	p.UpdatedAt = r.now()
	return copyProduct(p), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.products, id)
	return nil
}

type bannerRepo struct{ *db }

func (r *bannerRepo) Create(ctx context.Context, banner *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.banners[banner.ID] = copyOf(banner)
	return nil
}

func (r *bannerRepo) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.banners[id]
	if !ok {
		return nil, errors.NotFound("Banner", nil)
	}
	return copyOf(b), nil
}

func (r *bannerRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Banner, 0, len(r.banners))
	for _, b := range r.banners {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, copyOf(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *bannerRepo) Update(ctx context.Context, banner *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.banners[banner.ID]; !ok {
		return errors.NotFound("Banner", nil)
	}
	banner.UpdatedAt = r.now()
	r.banners[banner.ID] = copyOf(banner)
	return nil
}

func (r *bannerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.banners[id]; !ok {
		return errors.NotFound("Banner", nil)
	}
	delete(r.banners, id)
	return nil
}

type settingRepo struct{ *db }

func (r *settingRepo) Get(ctx context.Context, key string) (*entity.AppSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[key]
	if !ok {
		return nil, errors.NotFound("Setting", nil)
	}
	return copyOf(s), nil
}

func (r *settingRepo) List(ctx context.Context, category string) ([]*entity.AppSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.AppSetting, 0, len(r.settings))
	for _, s := range r.settings {
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, copyOf(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *settingRepo) Set(ctx context.Context, setting *entity.AppSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	setting.UpdatedAt = r.now()
	r.settings[setting.Key] = copyOf(setting)
	return nil
}
