package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
)

type firestoreSavedProductRepository struct {
	client *firestore.Client
}

func NewFirestoreSavedProductRepository(client *firestore.Client) repository.SavedProductRepository {
	return &firestoreSavedProductRepository{client: client}
}

// savedProductID keys the document by owner and product so a product can only be saved once.
func savedProductID(userID, productID string) string {
	return fmt.Sprintf("%s_%s", userID, productID)
}

func (r *firestoreSavedProductRepository) ListByUser(ctx context.Context, userID string) ([]*entity.SavedProduct, error) {
	query := r.client.Collection(savedCollection).Where("userId", "==", userID)
	saved, err := collect[entity.SavedProduct](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	newestFirst(saved, func(s *entity.SavedProduct) time.Time { return s.CreatedAt })
	return saved, nil
}

func (r *firestoreSavedProductRepository) Find(ctx context.Context, userID, productID string) (*entity.SavedProduct, error) {
	ref := r.client.Collection(savedCollection).Doc(savedProductID(userID, productID))
	return getDoc[entity.SavedProduct](ctx, ref, "Saved product")
}

func (r *firestoreSavedProductRepository) Create(ctx context.Context, saved *entity.SavedProduct) error {
	saved.ID = savedProductID(saved.UserID, saved.ProductID)
	_, err := r.client.Collection(savedCollection).Doc(saved.ID).Set(ctx, saved)
	return err
}

func (r *firestoreSavedProductRepository) Delete(ctx context.Context, userID, productID string) error {
	ref := r.client.Collection(savedCollection).Doc(savedProductID(userID, productID))
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Saved product", err)
	}
	_, err := ref.Delete(ctx)
	return err
}

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{client: client}
}

func (r *firestoreCartRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	query := r.client.Collection(cartCollection).Where("userId", "==", userID)
	items, err := collect[entity.CartItem](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	newestFirst(items, func(c *entity.CartItem) time.Time { return c.CreatedAt })
	return items, nil
}

func (r *firestoreCartRepository) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	return getDoc[entity.CartItem](ctx, r.client.Collection(cartCollection).Doc(id), "Cart item")
}

func (r *firestoreCartRepository) Find(ctx context.Context, userID, productID, color string) (*entity.CartItem, error) {
	query := r.client.Collection(cartCollection).
		Where("userId", "==", userID).
		Where("productId", "==", productID)
	items, err := collect[entity.CartItem](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	// color is omitted when empty, so it is matched here instead of in the query
	for _, item := range items {
		if item.Color == color {
			return item, nil
		}
	}
	return nil, notFound("Cart item", errNoDocument)
}

func (r *firestoreCartRepository) Save(ctx context.Context, item *entity.CartItem) error {
	item.UpdatedAt = time.Now()
	_, err := r.client.Collection(cartCollection).Doc(item.ID).Set(ctx, item)
	return err
}

func (r *firestoreCartRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(cartCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Cart item", err)
	}
	_, err := ref.Delete(ctx)
	return err
}

func (r *firestoreCartRepository) Clear(ctx context.Context, userID string) error {
	refs, err := r.client.Collection(cartCollection).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range refs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return err
		}
	}
	bw.End()
	return nil
}
