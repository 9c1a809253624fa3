package repository

import (
	"context"

	"dukkan/internal/domain/entity"
)

type ClaimInput struct {
	UserID         string
	Method         string
	AccountDetails string
	// ExpectedAmount, when non-nil, must equal the computed claim total.
	ExpectedAmount *float64
}

type ResolveInput struct {
	RequestID string
	Status    string // completed or rejected
	AdminID   string
	Notes     string
}

// Ledger owns every write that moves profit between an order and its merchant's
// accumulators. Each method runs as one transaction: either every document it touches is
// written or none is.
type Ledger interface {
	// CreateOrder stores a pending order and credits the merchant's pendingProfits and totalOrders.
	CreateOrder(ctx context.Context, order *entity.Order) error
	// TransitionOrder applies a manual status change and the matching profit movement.
	TransitionOrder(ctx context.Context, orderID string, to entity.OrderStatus) (*entity.Order, error)
	// DeleteOrder removes an order and reverses what it contributed. Withdrawn orders are refused.
	DeleteOrder(ctx context.Context, orderID string) error
	// ClaimWithdrawal stamps all of a merchant's completed orders as withdrawn and records them
	// on a new pending request, debiting achievedProfits by their summed profit.
	ClaimWithdrawal(ctx context.Context, input ClaimInput) (*entity.WithdrawRequest, error)
	// ResolveWithdrawal completes or rejects a pending request. Rejection restores the claimed
	// orders and credits the amount back. Resolving to the current status is a no-op; the
	// returned bool reports whether anything changed.
	ResolveWithdrawal(ctx context.Context, input ResolveInput) (*entity.WithdrawRequest, bool, error)
}
