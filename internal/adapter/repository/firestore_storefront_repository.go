package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
)

type firestoreBannerRepository struct {
	client *firestore.Client
}

func NewFirestoreBannerRepository(client *firestore.Client) repository.BannerRepository {
	return &firestoreBannerRepository{client: client}
}

func (r *firestoreBannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	_, err := r.client.Collection(bannersCollection).Doc(banner.ID).Set(ctx, banner)
	return err
}

func (r *firestoreBannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	return getDoc[entity.Banner](ctx, r.client.Collection(bannersCollection).Doc(id), "Banner")
}

func (r *firestoreBannerRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Banner, error) {
	query := r.client.Collection(bannersCollection).Query
	if activeOnly {
		query = query.Where("isActive", "==", true)
	}

	banners, err := collect[entity.Banner](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(banners, func(i, j int) bool { return banners[i].SortOrder < banners[j].SortOrder })
	return banners, nil
}

func (r *firestoreBannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	banner.UpdatedAt = time.Now()
	ref := r.client.Collection(bannersCollection).Doc(banner.ID)
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Banner", err)
	}
	_, err := ref.Set(ctx, banner)
	return err
}

func (r *firestoreBannerRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(bannersCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Banner", err)
	}
	_, err := ref.Delete(ctx)
	return err
}

type firestoreSettingRepository struct {
	client *firestore.Client
}

func NewFirestoreSettingRepository(client *firestore.Client) repository.SettingRepository {
	return &firestoreSettingRepository{client: client}
}

func (r *firestoreSettingRepository) Get(ctx context.Context, key string) (*entity.AppSetting, error) {
	return getDoc[entity.AppSetting](ctx, r.client.Collection(settingsCollection).Doc(key), "Setting")
}

func (r *firestoreSettingRepository) List(ctx context.Context, category string) ([]*entity.AppSetting, error) {
	query := r.client.Collection(settingsCollection).Query
	if category != "" {
		query = query.Where("category", "==", category)
	}

	settings, err := collect[entity.AppSetting](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (r *firestoreSettingRepository) Set(ctx context.Context, setting *entity.AppSetting) error {
	setting.UpdatedAt = time.Now()
	_, err := r.client.Collection(settingsCollection).Doc(setting.Key).Set(ctx, setting)
	return err
}
