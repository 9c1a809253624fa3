package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/utils"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

// checkCategory reads the category inside tx, so a category delete racing this write either
// sees the product or makes this transaction fail.
func (r *firestoreProductRepository) checkCategory(tx *firestore.Transaction, id string) error {
	if _, err := tx.Get(r.client.Collection(categoriesCollection).Doc(id)); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUnknownCategory
		}
		return err
	}
	return nil
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	ref := r.client.Collection(productsCollection).Doc(product.ID)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := r.checkCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Create(ref, product)
	})
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return getDoc[entity.Product](ctx, r.client.Collection(productsCollection).Doc(id), "Product")
}

// List filters by equality in Firestore and applies the text search in memory, since
// Firestore has no substring queries.
func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter, pagination *utils.Pagination) ([]*entity.Product, int64, error) {
	query := r.client.Collection(productsCollection).Query
	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}

	products, err := collect[entity.Product](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		matched := make([]*entity.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(strings.ToLower(p.SKU), search) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	newestFirst(products, func(p *entity.Product) time.Time { return p.CreatedAt })
	items, total := window(products, pagination)
	return items, total, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	ref := r.client.Collection(productsCollection).Doc(product.ID)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return notFound("Product", err)
		}
		if err := r.checkCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Set(ref, product)
	})
}

func (r *firestoreProductRepository) UpdateStock(ctx context.Context, id string, stock int) (*entity.Product, error) {
	ref := r.client.Collection(productsCollection).Doc(id)
	var product *entity.Product
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		p, err := txGet[entity.Product](tx, ref, "Product")
		if err != nil {
			return err
		}
		p.SetStock(stock)
		p.UpdatedAt = time.Now()
		product = p
		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: p.Stock},
			{Path: "status", Value: p.Status},
			{Path: "updatedAt", Value: p.UpdatedAt},
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(productsCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Product", err)
	}
	_, err := ref.Delete(ctx)
	return err
}
