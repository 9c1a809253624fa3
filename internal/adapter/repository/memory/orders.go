package memory

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/ledger"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type orderRepo struct{ *db }

func (r *orderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return copyOrder(o), nil
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	items, total := page(out, func(o *entity.Order) time.Time { return o.CreatedAt }, pagination)
	return items, total, nil
}

func (r *orderRepo) UpdateCustomer(ctx context.Context, id string, customer entity.OrderCustomer) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	o.Customer = customer
	o.UpdatedAt = r.now()
	return copyOrder(o), nil
}

type withdrawRepo struct{ *db }

func (r *withdrawRepo) GetByID(ctx context.Context, id string) (*entity.WithdrawRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.withdrawals[id]
	if !ok {
		return nil, errors.NotFound("Withdrawal request", nil)
	}
	return copyWithdraw(w), nil
}

func (r *withdrawRepo) List(ctx context.Context, filter repository.WithdrawFilter, pagination *utils.Pagination) ([]*entity.WithdrawRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.WithdrawRequest
	for _, w := range r.withdrawals {
		if filter.UserID != "" && w.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		out = append(out, copyWithdraw(w))
	}
	items, total := page(out, func(w *entity.WithdrawRequest) time.Time { return w.CreatedAt }, pagination)
	return items, total, nil
}

// ledgerRepo mutates copies and only stores them once the rules accept the change, so a
// rejected operation leaves the maps untouched.
type ledgerRepo struct{ *db }

func (r *ledgerRepo) user(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return copyUser(u), nil
}

func (r *ledgerRepo) CreateOrder(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.user(order.UserID)
	if err != nil {
		return err
	}
	ledger.NewOrder(order, user, r.now())

	r.orders[order.ID] = copyOrder(order)
	r.users[user.ID] = user
	return nil
}

func (r *ledgerRepo) TransitionOrder(ctx context.Context, orderID string, to entity.OrderStatus) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[orderID]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	order := copyOrder(stored)

	// orders whose merchant was removed still move, without profit bookkeeping
	user, _ := r.user(order.UserID)
	if err := ledger.Transition(order, user, to, r.now()); err != nil {
		return nil, err
	}

	r.orders[order.ID] = copyOrder(order)
	if user != nil {
		r.users[user.ID] = user
	}
	return order, nil
}

func (r *ledgerRepo) DeleteOrder(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	user, _ := r.user(order.UserID)
	if err := ledger.Delete(copyOrder(order), user, r.now()); err != nil {
		return err
	}

	delete(r.orders, orderID)
	if user != nil {
		r.users[user.ID] = user
	}
	return nil
}

func (r *ledgerRepo) ClaimWithdrawal(ctx context.Context, input repository.ClaimInput) (*entity.WithdrawRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.user(input.UserID)
	if err != nil {
		return nil, err
	}

	hasPending := false
	for _, w := range r.withdrawals {
		if w.UserID == user.ID && w.Status == entity.WithdrawPending {
			hasPending = true
			break
		}
	}

	var candidates []*entity.Order
	for _, o := range r.orders {
		if o.UserID == user.ID && o.Status == entity.OrderCompleted {
			candidates = append(candidates, copyOrder(o))
		}
	}
	candidates, _ = page(candidates, func(o *entity.Order) time.Time { return o.CreatedAt }, nil)

	req, claimed, err := ledger.Claim(newID(), user, candidates, hasPending, input, r.now())
	if err != nil {
		return nil, err
	}

	for _, o := range claimed {
		r.orders[o.ID] = copyOrder(o)
	}
	r.users[user.ID] = user
	r.withdrawals[req.ID] = copyWithdraw(req)
	return req, nil
}

func (r *ledgerRepo) ResolveWithdrawal(ctx context.Context, input repository.ResolveInput) (*entity.WithdrawRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.withdrawals[input.RequestID]
	if !ok {
		return nil, false, errors.NotFound("Withdrawal request", nil)
	}
	req := copyWithdraw(stored)
	user, _ := r.user(req.UserID)

	var claimed []*entity.Order
	for _, id := range req.OrderIDs {
		if o, ok := r.orders[id]; ok {
			claimed = append(claimed, copyOrder(o))
		}
	}

	changed, restored, err := ledger.Resolve(req, user, claimed, input, r.now())
	if err != nil || !changed {
		return req, false, err
	}

	for _, o := range restored {
		r.orders[o.ID] = copyOrder(o)
	}
	if user != nil && input.Status == entity.WithdrawRejected {
		r.users[user.ID] = user
	}
	r.withdrawals[req.ID] = copyWithdraw(req)
	return req, true, nil
}
