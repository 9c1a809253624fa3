package usecase

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/utils"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		now:      time.Now,
	}
}

type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,min=7,max=20"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	FCMToken *string `json:"fcmToken"`
	// Role is honoured for admins only.
	Role *string `json:"role" validate:"omitempty,oneof=admin customer"`
}

type BanInput struct {
	UserID string `json:"userId" validate:"required"`
	Days   *int   `json:"days" validate:"omitempty,min=1"`
	Reason string `json:"reason"`
}

func (uc *UserUseCase) List(ctx context.Context, filter repository.UserFilter, pagination utils.Pagination) ([]*entity.User, int64, error) {
	users, total, err := uc.userRepo.List(ctx, filter, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list users", err)
	}
	return users, total, nil
}

func (uc *UserUseCase) Get(ctx context.Context, actor *entity.User, id string) (*entity.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, errors.Forbidden("You can only view your own account", nil)
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, input UpdateUserInput) (*entity.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, errors.Forbidden("You can only edit your own account", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		phone := normalizePhone(*input.Phone)
		if phone != user.Phone {
			if _, err := uc.userRepo.GetByPhone(ctx, phone); err == nil {
				return nil, errors.Conflict("Phone number already registered")
			} else if !errors.IsNotFound(err) {
				return nil, errors.Wrap("Failed to check phone number", err)
			}
			user.Phone = phone
		}
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.TokenVersion++
	}
	if input.FCMToken != nil {
		user.FCMToken = *input.FCMToken
	}
	if input.Role != nil && actor.IsAdmin() {
		if actor.ID == id && *input.Role != entity.RoleAdmin {
			return nil, errors.BadRequest("Admins cannot demote themselves", nil)
		}
		if user.Role != *input.Role {
			user.Role = *input.Role
			// role is baked into tokens
			user.TokenVersion++
		}
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap("Failed to update user", err)
	}
	return user, nil
}

// Ban blocks the user and revokes their sessions. Without Days the ban is permanent.
func (uc *UserUseCase) Ban(ctx context.Context, actor *entity.User, input BanInput) (*entity.User, error) {
	if actor.ID == input.UserID {
		return nil, errors.BadRequest("You cannot ban yourself", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.IsBanned = true
	user.BanReason = input.Reason
	user.BannedUntil = nil
	if input.Days != nil {
		until := uc.now().Add(time.Duration(*input.Days) * 24 * time.Hour)
		user.BannedUntil = &until
	}
	user.TokenVersion++

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap("Failed to ban user", err)
	}
	logger.Info("User %s banned by %s", user.ID, actor.ID)
	return user, nil
}

func (uc *UserUseCase) Unban(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	clearBan(user)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap("Failed to unban user", err)
	}
	return user, nil
}

// ForceLogout invalidates every token issued to the user so far.
func (uc *UserUseCase) ForceLogout(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.TokenVersion++
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap("Failed to revoke sessions", err)
	}
	return user, nil
}

// LiftExpiredBans clears bans whose end time has passed. It runs from the scheduler.
func (uc *UserUseCase) LiftExpiredBans(ctx context.Context) (int, error) {
	users, err := uc.userRepo.ListExpiredBans(ctx, uc.now())
	if err != nil {
		return 0, err
	}

	lifted := 0
	for _, user := range users {
		clearBan(user)
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Error("Failed to lift ban for %s: %v", user.ID, err)
			continue
		}
		lifted++
	}
	if lifted > 0 {
		logger.Info("Lifted %d expired bans", lifted)
	}
	return lifted, nil
}
