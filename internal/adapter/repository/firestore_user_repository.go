package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	// phone numbers are unique, so check and write in one transaction
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection(usersCollection).Where("phone", "==", user.Phone).Limit(1)
		existing, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errors.Conflict("Phone number already registered")
		}
		return tx.Create(r.client.Collection(usersCollection).Doc(user.ID), user)
	})
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getDoc[entity.User](ctx, r.client.Collection(usersCollection).Doc(id), "User")
}

func (r *firestoreUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	query := r.client.Collection(usersCollection).Where("phone", "==", phone).Limit(1)
	users, err := collect[entity.User](query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.NotFound("User", nil)
	}
	return users[0], nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	// profit counters are only written by the ledger
	updates := []firestore.Update{
		{Path: "name", Value: user.Name},
		{Path: "phone", Value: user.Phone},
		{Path: "email", Value: user.Email},
		{Path: "passwordHash", Value: user.PasswordHash},
		{Path: "role", Value: user.Role},
		{Path: "isBanned", Value: user.IsBanned},
		{Path: "banReason", Value: user.BanReason},
		{Path: "bannedUntil", Value: user.BannedUntil},
		{Path: "tokenVersion", Value: user.TokenVersion},
		{Path: "fcmToken", Value: user.FCMToken},
		{Path: "updatedAt", Value: user.UpdatedAt},
	}

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Update(ctx, updates)
	return notFound("User", err)
}

func (r *firestoreUserRepository) List(ctx context.Context, filter repository.UserFilter, pagination *utils.Pagination) ([]*entity.User, int64, error) {
	query := r.client.Collection(usersCollection).Query
	if filter.Role != "" {
		query = query.Where("role", "==", filter.Role)
	}
	if filter.Banned != nil {
		query = query.Where("isBanned", "==", *filter.Banned)
	}

	users, err := collect[entity.User](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	newestFirst(users, func(u *entity.User) time.Time { return u.CreatedAt })
	items, total := window(users, pagination)
	return items, total, nil
}

func (r *firestoreUserRepository) ListExpiredBans(ctx context.Context, now time.Time) ([]*entity.User, error) {
	query := r.client.Collection(usersCollection).Where("isBanned", "==", true)
	banned, err := collect[entity.User](query.Documents(ctx))
	if err != nil {
		return nil, err
	}

	expired := make([]*entity.User, 0)
	for _, u := range banned {
		if u.BannedUntil != nil && !now.Before(*u.BannedUntil) {
			expired = append(expired, u)
		}
	}
	return expired, nil
}
