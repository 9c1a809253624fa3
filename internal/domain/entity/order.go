package entity

import "time"

type OrderCustomer struct {
	Name     string `json:"name" firestore:"name"`
	Phone    string `json:"phone" firestore:"phone"`
	Address  string `json:"address" firestore:"address"`
	Province string `json:"province" firestore:"province"`
	Notes    string `json:"notes,omitempty" firestore:"notes,omitempty"`
}

type OrderItem struct {
	ProductID      string  `json:"productId" firestore:"productId"`
	Name           string  `json:"name" firestore:"name"`
	ImageURL       string  `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Color          string  `json:"color,omitempty" firestore:"color,omitempty"`
	Quantity       int     `json:"quantity" firestore:"quantity"`
	WholesalePrice float64 `json:"wholesalePrice" firestore:"wholesalePrice"`
	SellingPrice   float64 `json:"sellingPrice" firestore:"sellingPrice"`
}

type Order struct {
	ID        string        `json:"id" firestore:"id"`
	UserID    string        `json:"userId" firestore:"userId"`
	UserPhone string        `json:"userPhone" firestore:"userPhone"`
	Status    OrderStatus   `json:"status" firestore:"status"`
	Customer  OrderCustomer `json:"customer" firestore:"customer"`
	Items     []OrderItem   `json:"items" firestore:"items"`

	CustomerPrice     float64 `json:"customerPrice" firestore:"customerPrice"`
	DeliveryFee       float64 `json:"deliveryFee" firestore:"deliveryFee"`
	TotalWithDelivery float64 `json:"totalWithDelivery" firestore:"totalWithDelivery"`
	WholesaleTotal    float64 `json:"wholesaleTotal" firestore:"wholesaleTotal"`
	Profit            float64 `json:"profit" firestore:"profit"`

	WithdrawRequestID string `json:"withdrawRequestId,omitempty" firestore:"withdrawRequestId,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
