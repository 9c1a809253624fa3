package usecase

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
)

// DefaultSettings are written on first start so delivery pricing and the contact page work
// before an admin touches them.
var DefaultSettings = []entity.AppSetting{
	{Key: entity.DeliveryPriceDefaultKey, Value: "5000", Category: entity.SettingCategoryDelivery},
	{Key: entity.DeliveryPriceKey("بغداد"), Value: "3000", Category: entity.SettingCategoryDelivery},
	{Key: "contact_phone", Value: "", Category: entity.SettingCategoryContact},
	{Key: "contact_whatsapp", Value: "", Category: entity.SettingCategoryContact},
	{Key: "store_name", Value: "دكان", Category: entity.SettingCategoryGeneral},
}

type BootstrapUseCase struct {
	userRepo    repository.UserRepository
	settingRepo repository.SettingRepository
	now         func() time.Time
}

func NewBootstrapUseCase(userRepo repository.UserRepository, settingRepo repository.SettingRepository) *BootstrapUseCase {
	return &BootstrapUseCase{
		userRepo:    userRepo,
		settingRepo: settingRepo,
		now:         time.Now,
	}
}

type AdminInput struct {
	Name     string
	Phone    string
	Password string
}

// EnsureAdmin creates the admin account, or promotes and re-keys an existing user with the
// same phone. created is false in the second case.
func (uc *BootstrapUseCase) EnsureAdmin(ctx context.Context, input AdminInput) (user *entity.User, created bool, err error) {
	phone := normalizePhone(input.Phone)
	if len(phone) < 7 || len(input.Password) < 6 {
		return nil, false, errors.BadRequest("Admin needs a phone number and a password of at least 6 characters", nil)
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.IsNotFound(err) {
		return nil, false, errors.Wrap("Failed to look up admin", err)
	}

	now := uc.now()
	if existing != nil {
		existing.Role = entity.RoleAdmin
		existing.PasswordHash = hash
		existing.IsBanned = false
		existing.BannedUntil = nil
		existing.BanReason = ""
		existing.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap("Failed to promote admin", err)
		}
		logger.Info("Promoted %s to admin", existing.ID)
		return existing, false, nil
	}

	user = &entity.User{
		ID:           generateUUID(),
		Name:         input.Name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, false, errors.Wrap("Failed to create admin", err)
	}
	logger.Info("Created admin %s", user.ID)
	return user, true, nil
}

// SeedSettings writes DefaultSettings. Existing keys are kept unless overwrite is set.
func (uc *BootstrapUseCase) SeedSettings(ctx context.Context, overwrite bool) (int, error) {
	written := 0
	for _, def := range DefaultSettings {
		if !overwrite {
			_, err := uc.settingRepo.Get(ctx, def.Key)
			if err == nil {
				continue
			}
			if !errors.IsNotFound(err) {
				return written, errors.Wrap("Failed to read setting", err)
			}
		}
		setting := def
		setting.UpdatedAt = uc.now()
		if err := uc.settingRepo.Set(ctx, &setting); err != nil {
			return written, errors.Wrap("Failed to write setting", err)
		}
		written++
	}
	return written, nil
}
