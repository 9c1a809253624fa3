package entity

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           string `json:"id" firestore:"id"`
	Name         string `json:"name" firestore:"name"`
	Phone        string `json:"phone" firestore:"phone"`
	Email        string `json:"email,omitempty" firestore:"email,omitempty"`
	PasswordHash string `json:"-" firestore:"passwordHash"`
	Role         string `json:"role" firestore:"role"`

	IsBanned    bool       `json:"isBanned" firestore:"isBanned"`
	BanReason   string     `json:"banReason,omitempty" firestore:"banReason,omitempty"`
	BannedUntil *time.Time `json:"bannedUntil,omitempty" firestore:"bannedUntil,omitempty"`

	// TokenVersion is embedded in issued tokens; bumping it logs the user out everywhere.
	TokenVersion int `json:"-" firestore:"tokenVersion"`

	PendingProfits  float64 `json:"pendingProfits" firestore:"pendingProfits"`
	AchievedProfits float64 `json:"achievedProfits" firestore:"achievedProfits"`
	TotalOrders     int     `json:"totalOrders" firestore:"totalOrders"`

	FCMToken string `json:"-" firestore:"fcmToken,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BanActive reports whether the ban still applies at t. A nil BannedUntil is permanent.
func (u *User) BanActive(t time.Time) bool {
	if !u.IsBanned {
		return false
	}
	return u.BannedUntil == nil || t.Before(*u.BannedUntil)
}
