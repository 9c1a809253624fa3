package memory

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type userRepo struct{ *db }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Phone == user.Phone {
			return errors.Conflict("Phone number already registered")
		}
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Phone == phone {
			return copyUser(u), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *userRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.PendingProfits = stored.PendingProfits
	user.AchievedProfits = stored.AchievedProfits
	user.TotalOrders = stored.TotalOrders
	user.UpdatedAt = r.now()
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) List(ctx context.Context, filter repository.UserFilter, pagination *utils.Pagination) ([]*entity.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Banned != nil && u.IsBanned != *filter.Banned {
			continue
		}
		out = append(out, copyUser(u))
	}
	items, total := page(out, func(u *entity.User) time.Time { return u.CreatedAt }, pagination)
	return items, total, nil
}

func (r *userRepo) ListExpiredBans(ctx context.Context, now time.Time) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.User
	for _, u := range r.users {
		if u.IsBanned && u.BannedUntil != nil && !now.Before(*u.BannedUntil) {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}
