package memory

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type customerRepo struct{ *db }

func (r *customerRepo) Upsert(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, c := range r.customers {
		if c.Phone == customer.Phone {
			customer.ID = id
			customer.CreatedAt = c.CreatedAt
			customer.UpdatedAt = now
			r.customers[id] = copyOf(customer)
			return nil
		}
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now
	r.customers[customer.ID] = copyOf(customer)
	return nil
}

func (r *customerRepo) List(ctx context.Context, pagination *utils.Pagination) ([]*entity.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Customer
	for _, c := range r.customers {
		out = append(out, copyOf(c))
	}
	items, total := page(out, func(c *entity.Customer) time.Time { return c.UpdatedAt }, pagination)
	return items, total, nil
}

type cartRepo struct{ *db }

func (r *cartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.CartItem
	for _, c := range r.carts {
		if c.UserID == userID {
			out = append(out, copyOf(c))
		}
	}
	items, _ := page(out, func(c *entity.CartItem) time.Time { return c.CreatedAt }, nil)
	return items, nil
}

func (r *cartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[id]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	return copyOf(c), nil
}

func (r *cartRepo) Find(ctx context.Context, userID, productID, color string) (*entity.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.UserID == userID && c.ProductID == productID && c.Color == color {
			return copyOf(c), nil
		}
	}
	return nil, errors.NotFound("Cart item", nil)
}

func (r *cartRepo) Save(ctx context.Context, item *entity.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = r.now()
	r.carts[item.ID] = copyOf(item)
	return nil
}

func (r *cartRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return errors.NotFound("Cart item", nil)
	}
	delete(r.carts, id)
	return nil
}

func (r *cartRepo) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.carts {
		if c.UserID == userID {
			delete(r.carts, id)
		}
	}
	return nil
}

type savedProductRepo struct{ *db }

func (r *savedProductRepo) ListByUser(ctx context.Context, userID string) ([]*entity.SavedProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.SavedProduct
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, copyOf(s))
		}
	}
	items, _ := page(out, func(s *entity.SavedProduct) time.Time { return s.CreatedAt }, nil)
	return items, nil
}

func (r *savedProductRepo) Find(ctx context.Context, userID, productID string) (*entity.SavedProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.saved {
		if s.UserID == userID && s.ProductID == productID {
			return copyOf(s), nil
		}
	}
	return nil, errors.NotFound("Saved product", nil)
}

func (r *savedProductRepo) Create(ctx context.Context, saved *entity.SavedProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved[saved.ID] = copyOf(saved)
	return nil
}

func (r *savedProductRepo) Delete(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.saved {
		if s.UserID == userID && s.ProductID == productID {
			delete(r.saved, id)
			return nil
		}
	}
	return errors.NotFound("Saved product", nil)
}

type notificationRepo struct{ *db }

func (r *notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return r.CreateMany(ctx, []*entity.Notification{n})
}

func (r *notificationRepo) CreateMany(ctx context.Context, notifications []*entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		r.notifications[n.ID] = copyNotification(n)
	}
	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return copyNotification(n), nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, pagination *utils.Pagination) ([]*entity.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, copyNotification(n))
	}
	items, total := page(out, func(n *entity.Notification) time.Time { return n.CreatedAt }, pagination)
	return items, total, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	if !n.IsRead {
		now := r.now()
		n.IsRead = true
		n.ReadAt = &now
		n.UpdatedAt = now
	}
	return copyNotification(n), nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			readAt := now
			n.IsRead = true
			n.ReadAt = &readAt
			n.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return errors.NotFound("Notification", nil)
	}
	delete(r.notifications, id)
	return nil
}
