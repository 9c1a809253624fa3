package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/utils"
)

type firestoreWithdrawRepository struct {
	client *firestore.Client
}

func NewFirestoreWithdrawRepository(client *firestore.Client) repository.WithdrawRepository {
	return &firestoreWithdrawRepository{
		client: client,
	}
}

func (r *firestoreWithdrawRepository) GetByID(ctx context.Context, id string) (*entity.WithdrawRequest, error) {
	return getDoc[entity.WithdrawRequest](ctx, r.client.Collection(withdrawalsCollection).Doc(id), "Withdrawal request")
}

func (r *firestoreWithdrawRepository) List(ctx context.Context, filter repository.WithdrawFilter, pagination *utils.Pagination) ([]*entity.WithdrawRequest, int64, error) {
	query := r.client.Collection(withdrawalsCollection).Query
	if filter.UserID != "" {
		query = query.Where("userId", "==", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}

	requests, err := collect[entity.WithdrawRequest](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	newestFirst(requests, func(w *entity.WithdrawRequest) time.Time { return w.CreatedAt })
	items, total := window(requests, pagination)
	return items, total, nil
}
