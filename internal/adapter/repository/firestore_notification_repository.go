package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/utils"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{client: client}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	_, err := r.client.Collection(notificationsCollection).Doc(notification.ID).Set(ctx, notification)
	return err
}

// CreateMany writes a broadcast fan-out through a BulkWriter, which batches and retries.
func (r *firestoreNotificationRepository) CreateMany(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(notifications))
	for _, n := range notifications {
		job, err := bw.Set(r.client.Collection(notificationsCollection).Doc(n.ID), n)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	return getDoc[entity.Notification](ctx, r.client.Collection(notificationsCollection).Doc(id), "Notification")
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, pagination *utils.Pagination) ([]*entity.Notification, int64, error) {
	query := r.client.Collection(notificationsCollection).Where("userId", "==", userID)
	if unreadOnly {
		query = query.Where("isRead", "==", false)
	}

	notifications, err := collect[entity.Notification](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	newestFirst(notifications, func(n *entity.Notification) time.Time { return n.CreatedAt })
	items, total := window(notifications, pagination)
	return items, total, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	ref := r.client.Collection(notificationsCollection).Doc(id)
	var result *entity.Notification
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		n, err := txGet[entity.Notification](tx, ref, "Notification")
		if err != nil {
			return err
		}
		result = n
		if n.IsRead {
			return nil
		}

		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
		n.UpdatedAt = now
		return tx.Update(ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	docs, err := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	now := time.Now()
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, doc := range docs {
		job, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return 0, err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	updated := 0
	for _, job := range jobs {
		if _, err := job.Results(); err == nil {
			updated++
		}
	}
	return updated, nil
}

func (r *firestoreNotificationRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(notificationsCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return notFound("Notification", err)
	}
	_, err := ref.Delete(ctx)
	return err
}
