package usecase

import (
	"context"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/websocket"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/metrics"
	"dukkan/pkg/utils"
)

const EventNotification = "notification"

// StaleTokenChecker reports push errors that mean the device token is gone for good.
type StaleTokenChecker func(error) bool

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	push             service.PushService
	isStale          StaleTokenChecker
	live             LiveNotifier
}

// NewNotificationUseCase builds the notifier. push and live may be nil when FCM or the
// websocket hub is not running.
func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	push service.PushService,
	isStale StaleTokenChecker,
	live LiveNotifier,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		push:             push,
		isStale:          isStale,
		live:             live,
	}
}

type SendNotificationInput struct {
	// UserID empty means every user.
	UserID  string `json:"userId"`
	Type    string `json:"type" validate:"omitempty,oneof=general order withdraw"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func newNotification(userID, kind, title, message string, now time.Time) *entity.Notification {
	if kind == "" {
		kind = entity.NotificationGeneral
	}
	return &entity.Notification{
		ID:        generateUUID(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NotifyUser stores and delivers a notification. Failures are logged and never surface to
// the operation that triggered them.
func (uc *NotificationUseCase) NotifyUser(ctx context.Context, userID, kind, title, message string) {
	n := newNotification(userID, kind, title, message, time.Now())
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		logger.Error("Failed to store notification for %s: %v", userID, err)
		return
	}
	uc.deliver(ctx, n, nil)
}

func (uc *NotificationUseCase) deliver(ctx context.Context, n *entity.Notification, user *entity.User) {
	if uc.live != nil {
		uc.live.SendToUser(n.UserID, websocket.Event{Type: EventNotification, Data: n})
	}
	if uc.push == nil {
		return
	}

	if user == nil {
		var err error
		user, err = uc.userRepo.GetByID(ctx, n.UserID)
		if err != nil {
			logger.Warn("Skipping push for %s: %v", n.UserID, err)
			return
		}
	}
	if user.FCMToken == "" {
		return
	}

	err := uc.push.Send(ctx, service.PushMessage{
		Token: user.FCMToken,
		Title: n.Title,
		Body:  n.Message,
		Data:  map[string]string{"notificationId": n.ID, "type": n.Type},
	})
	if err == nil {
		metrics.NotificationPushCounter.WithLabelValues("sent").Inc()
		return
	}

	metrics.NotificationPushCounter.WithLabelValues("failed").Inc()
	if uc.isStale != nil && uc.isStale(err) {
		user.FCMToken = ""
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Warn("Failed to clear stale push token for %s: %v", user.ID, err)
		}
		return
	}
	logger.Warn("Push to %s failed: %v", user.ID, err)
}

// Send notifies one user, or fans out one row per user when no target is given.
func (uc *NotificationUseCase) Send(ctx context.Context, input SendNotificationInput) (int, error) {
	now := time.Now()
	if input.UserID != "" {
		user, err := uc.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return 0, err
		}
		n := newNotification(user.ID, input.Type, input.Title, input.Message, now)
		if err := uc.notificationRepo.Create(ctx, n); err != nil {
			return 0, errors.Wrap("Failed to create notification", err)
		}
		uc.deliver(ctx, n, user)
		return 1, nil
	}

	users, _, err := uc.userRepo.List(ctx, repository.UserFilter{}, nil)
	if err != nil {
		return 0, errors.Wrap("Failed to load users", err)
	}
	batch := make([]*entity.Notification, 0, len(users))
	for _, user := range users {
		batch = append(batch, newNotification(user.ID, input.Type, input.Title, input.Message, now))
	}
	if err := uc.notificationRepo.CreateMany(ctx, batch); err != nil {
		return 0, errors.Wrap("Failed to create notifications", err)
	}
	for i, n := range batch {
		uc.deliver(ctx, n, users[i])
	}
	logger.Info("Broadcast notification to %d users", len(batch))
	return len(batch), nil
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, pagination utils.Pagination) ([]*entity.Notification, int64, error) {
	items, total, err := uc.notificationRepo.ListByUser(ctx, userID, unreadOnly, &pagination)
	if err != nil {
		return nil, 0, errors.Wrap("Failed to list notifications", err)
	}
	return items, total, nil
}

func (uc *NotificationUseCase) owned(ctx context.Context, actor *entity.User, id string) error {
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actor.ID && !actor.IsAdmin() {
		return errors.NotFound("Notification", nil)
	}
	return nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, actor *entity.User, id string) (*entity.Notification, error) {
	if err := uc.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return uc.notificationRepo.MarkRead(ctx, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	count, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, errors.Wrap("Failed to mark notifications read", err)
	}
	return count, nil
}

func (uc *NotificationUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return uc.notificationRepo.Delete(ctx, id)
}
