package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
)

type SettingUseCase struct {
	settingRepo repository.SettingRepository
}

func NewSettingUseCase(settingRepo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{settingRepo: settingRepo}
}

type SettingInput struct {
	Value    string `json:"value"`
	Category string `json:"category" validate:"omitempty,oneof=delivery contact general"`
}

func (uc *SettingUseCase) List(ctx context.Context, category string) ([]*entity.AppSetting, error) {
	settings, err := uc.settingRepo.List(ctx, category)
	if err != nil {
		return nil, errors.Wrap("Failed to list settings", err)
	}
	return settings, nil
}

func (uc *SettingUseCase) Get(ctx context.Context, key string) (*entity.AppSetting, error) {
	return uc.settingRepo.Get(ctx, key)
}

// Set writes a setting. Delivery prices must parse as non-negative numbers.
func (uc *SettingUseCase) Set(ctx context.Context, key string, input SettingInput) (*entity.AppSetting, error) {
	category := input.Category
	if category == "" {
		category = defaultCategory(key)
	}
	if category == entity.SettingCategoryDelivery {
		if fee, err := strconv.ParseFloat(strings.TrimSpace(input.Value), 64); err != nil || fee < 0 {
			return nil, errors.BadRequest("Delivery price must be a non-negative number", err)
		}
	}

	setting := &entity.AppSetting{
		Key:       key,
		Value:     input.Value,
		Category:  category,
		UpdatedAt: time.Now(),
	}
	if err := uc.settingRepo.Set(ctx, setting); err != nil {
		return nil, errors.Wrap("Failed to save setting", err)
	}
	return setting, nil
}

func defaultCategory(key string) string {
	if strings.HasPrefix(key, entity.DeliveryPriceKey("")) {
		return entity.SettingCategoryDelivery
	}
	return entity.SettingCategoryGeneral
}

// deliveryFee looks up the province price, then the default price, then charges nothing.
// A stored value that does not parse is skipped with a warning.
func deliveryFee(ctx context.Context, settings repository.SettingRepository, province string) (float64, error) {
	keys := []string{entity.DeliveryPriceDefaultKey}
	if province != "" {
		keys = []string{entity.DeliveryPriceKey(province), entity.DeliveryPriceDefaultKey}
	}

	for _, key := range keys {
		setting, err := settings.Get(ctx, key)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return 0, errors.Wrap("Failed to load delivery price", err)
		}
		fee, err := strconv.ParseFloat(strings.TrimSpace(setting.Value), 64)
		if err != nil || fee < 0 {
			logger.Warn("Ignoring malformed delivery price %q under %s", setting.Value, key)
			continue
		}
		return fee, nil
	}
	return 0, nil
}
