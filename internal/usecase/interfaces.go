package usecase

import (
	"context"
	"time"

	"dukkan/internal/infrastructure/websocket"
)

type RateLimiter interface {
	Allow(ctx context.Context, subject, action string) (bool, time.Duration, error)
	Reset(ctx context.Context, subject, action string) error
}

// LiveNotifier pushes events to connected websocket clients.
type LiveNotifier interface {
	SendToUser(userID string, event websocket.Event)
	Broadcast(event websocket.Event)
}

// Notifier records an in-app notification for one user and delivers it.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, kind, title, message string)
}
