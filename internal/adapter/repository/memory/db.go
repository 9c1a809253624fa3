// Package memory is the in-process storage backend. Every repository shares one lock, so
// multi-document ledger operations are atomic with respect to each other.
package memory

import (
	"sort"
	"sync"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/utils"
)

type db struct {
	mu sync.RWMutex

	users         map[string]*entity.User
	categories    map[string]*entity.Category
	products      map[string]*entity.Product
	customers     map[string]*entity.Customer
	orders        map[string]*entity.Order
	withdrawals   map[string]*entity.WithdrawRequest
	notifications map[string]*entity.Notification
	banners       map[string]*entity.Banner
	carts         map[string]*entity.CartItem
	saved         map[string]*entity.SavedProduct
	settings      map[string]*entity.AppSetting

	now func() time.Time
}

// NewStore returns a Store whose repositories all share one in-memory database.
func NewStore() *repository.Store {
	d := &db{
		users:         map[string]*entity.User{},
		categories:    map[string]*entity.Category{},
		products:      map[string]*entity.Product{},
		customers:     map[string]*entity.Customer{},
		orders:        map[string]*entity.Order{},
		withdrawals:   map[string]*entity.WithdrawRequest{},
		notifications: map[string]*entity.Notification{},
		banners:       map[string]*entity.Banner{},
		carts:         map[string]*entity.CartItem{},
		saved:         map[string]*entity.SavedProduct{},
		settings:      map[string]*entity.AppSetting{},
		now:           time.Now,
	}

	return &repository.Store{
		Users:         &userRepo{d},
		Categories:    &categoryRepo{d},
		Products:      &productRepo{d},
		Customers:     &customerRepo{d},
		Orders:        &orderRepo{d},
		Withdrawals:   &withdrawRepo{d},
		Ledger:        &ledgerRepo{d},
		Notifications: &notificationRepo{d},
		Banners:       &bannerRepo{d},
		Carts:         &cartRepo{d},
		SavedProducts: &savedProductRepo{d},
		Settings:      &settingRepo{d},
	}
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := copyOf(u)
	c.BannedUntil = copyTime(u.BannedUntil)
	return c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := copyOf(p)
	c.AdditionalImages = append([]string(nil), p.AdditionalImages...)
	c.Colors = append([]string(nil), p.Colors...)
	if p.MinPrice != nil {
		v := *p.MinPrice
		c.MinPrice = &v
	}
	if p.MaxPrice != nil {
		v := *p.MaxPrice
		c.MaxPrice = &v
	}
	return c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := copyOf(o)
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return c
}

func copyWithdraw(w *entity.WithdrawRequest) *entity.WithdrawRequest {
	c := copyOf(w)
	c.OrderIDs = append([]string(nil), w.OrderIDs...)
	c.ProcessedAt = copyTime(w.ProcessedAt)
	return c
}

func copyNotification(n *entity.Notification) *entity.Notification {
	c := copyOf(n)
	c.ReadAt = copyTime(n.ReadAt)
	return c
}

// page sorts items newest first and cuts the requested window.
func page[T any](items []T, createdAt func(T) time.Time, p *utils.Pagination) ([]T, int64) {
	if items == nil {
		items = make([]T, 0)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	total := int64(len(items))
	if p == nil {
		return items, total
	}
	start, end := p.Window(len(items))
	return items[start:end], total
}
