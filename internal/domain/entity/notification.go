package entity

import "time"

type Notification struct {
	ID        string     `json:"id" firestore:"id"`
	UserID    string     `json:"userId,omitempty" firestore:"userId"` // empty for broadcast
	Type      string     `json:"type" firestore:"type"`
	Title     string     `json:"title" firestore:"title"`
	Message   string     `json:"message" firestore:"message"`
	IsRead    bool       `json:"isRead" firestore:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty" firestore:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

const (
	NotificationGeneral  = "general"
	NotificationOrder    = "order"
	NotificationWithdraw = "withdraw"
)
