package entity

import "time"

const (
	WithdrawPending   = "pending"
	WithdrawCompleted = "completed"
	WithdrawRejected  = "rejected"
)

type WithdrawRequest struct {
	ID             string     `json:"id" firestore:"id"`
	UserID         string     `json:"userId" firestore:"userId"`
	UserPhone      string     `json:"userPhone" firestore:"userPhone"`
	Amount         float64    `json:"amount" firestore:"amount"`
	Method         string     `json:"method" firestore:"method"`
	AccountDetails string     `json:"accountDetails,omitempty" firestore:"accountDetails,omitempty"`
	Status         string     `json:"status" firestore:"status"`
	OrderIDs       []string   `json:"orderIds" firestore:"orderIds"`
	AdminNotes     string     `json:"adminNotes,omitempty" firestore:"adminNotes,omitempty"`
	ProcessedBy    string     `json:"processedBy,omitempty" firestore:"processedBy,omitempty"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty" firestore:"processedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

func IsWithdrawResolution(status string) bool {
	return status == WithdrawCompleted || status == WithdrawRejected
}
