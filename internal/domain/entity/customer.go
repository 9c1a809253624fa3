package entity

import "time"

// Customer is the directory record built from the customer details embedded in orders.
type Customer struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	Phone     string    `json:"phone" firestore:"phone"`
	Address   string    `json:"address" firestore:"address"`
	Province  string    `json:"province,omitempty" firestore:"province,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
