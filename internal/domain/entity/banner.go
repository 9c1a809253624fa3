package entity

import "time"

type Banner struct {
	ID        string    `json:"id" firestore:"id"`
	Title     string    `json:"title" firestore:"title"`
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl"`
	Link      string    `json:"link,omitempty" firestore:"link,omitempty"`
	SortOrder int       `json:"sortOrder" firestore:"sortOrder"`
	IsActive  bool      `json:"isActive" firestore:"isActive"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
