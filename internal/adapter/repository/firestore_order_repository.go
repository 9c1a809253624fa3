package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/utils"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return getDoc[entity.Order](ctx, r.client.Collection(ordersCollection).Doc(id), "Order")
}

func (r *firestoreOrderRepository) List(ctx context.Context, filter repository.OrderFilter, pagination *utils.Pagination) ([]*entity.Order, int64, error) {
	query := r.client.Collection(ordersCollection).Query
	if filter.UserID != "" {
		query = query.Where("userId", "==", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", string(filter.Status))
	}

	orders, err := collect[entity.Order](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	newestFirst(orders, func(o *entity.Order) time.Time { return o.CreatedAt })
	items, total := window(orders, pagination)
	return items, total, nil
}

// UpdateCustomer only touches the embedded customer, so it cannot race the ledger's status writes.
func (r *firestoreOrderRepository) UpdateCustomer(ctx context.Context, id string, customer entity.OrderCustomer) (*entity.Order, error) {
	_, err := r.client.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "customer", Value: customer},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return nil, notFound("Order", err)
	}
	return r.GetByID(ctx, id)
}

type firestoreCustomerRepository struct {
	client *firestore.Client
}

func NewFirestoreCustomerRepository(client *firestore.Client) repository.CustomerRepository {
	return &firestoreCustomerRepository{
		client: client,
	}
}

func (r *firestoreCustomerRepository) Upsert(ctx context.Context, customer *entity.Customer) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()
		query := r.client.Collection(customersCollection).Where("phone", "==", customer.Phone).Limit(1)
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}

		if len(docs) > 0 {
			var existing entity.Customer
			if err := docs[0].DataTo(&existing); err != nil {
				return err
			}
			customer.ID = existing.ID
			customer.CreatedAt = existing.CreatedAt
		} else if customer.CreatedAt.IsZero() {
			customer.CreatedAt = now
		}
		customer.UpdatedAt = now

		return tx.Set(r.client.Collection(customersCollection).Doc(customer.ID), customer)
	})
}

func (r *firestoreCustomerRepository) List(ctx context.Context, pagination *utils.Pagination) ([]*entity.Customer, int64, error) {
	customers, err := collect[entity.Customer](r.client.Collection(customersCollection).Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	newestFirst(customers, func(c *entity.Customer) time.Time { return c.UpdatedAt })
	items, total := window(customers, pagination)
	return items, total, nil
}
