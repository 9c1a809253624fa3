package entity

import "time"

type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"userId"`
	ProductID string    `json:"productId" firestore:"productId"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	Color     string    `json:"color,omitempty" firestore:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

type SavedProduct struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"userId" firestore:"userId"`
	ProductID string    `json:"productId" firestore:"productId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
