package repository

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/pkg/utils"
)

type UserFilter struct {
	Role   string
	Banned *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	// Update writes profile, ban and session fields. The profit counters belong to the Ledger and are left alone.
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter UserFilter, pagination *utils.Pagination) ([]*entity.User, int64, error)
	// ListExpiredBans returns banned users whose ban ended before now.
	ListExpiredBans(ctx context.Context, now time.Time) ([]*entity.User, error)
}
