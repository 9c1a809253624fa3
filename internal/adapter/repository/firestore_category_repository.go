package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Set(ctx, category)
	return err
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return getDoc[entity.Category](ctx, r.client.Collection(categoriesCollection).Doc(id), "Category")
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	return collect[entity.Category](r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx))
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()
	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: category.Name},
		{Path: "description", Value: category.Description},
		{Path: "updatedAt", Value: category.UpdatedAt},
	})
	return notFound("Category", err)
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(categoriesCollection).Doc(id)
		if _, err := tx.Get(ref); err != nil {
			return notFound("Category", err)
		}

		query := r.client.Collection(productsCollection).Where("categoryId", "==", id).Limit(1)
		products, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(products) > 0 {
			return errors.Conflict("Category still has products")
		}

		return tx.Delete(ref)
	})
}
