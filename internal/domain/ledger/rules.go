// Package ledger holds the profit-accounting rules shared by every storage backend. Backends
// load the documents inside their transaction, ask these functions what to write, and write it.
package ledger

import (
	"net/http"
	"time"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

var (
	ErrNoEligibleOrders = errors.New("NO_ELIGIBLE_ORDERS", "No completed orders available for withdrawal", http.StatusBadRequest, nil)
	ErrPendingExists    = errors.New("WITHDRAW_PENDING", "A withdrawal request is already pending", http.StatusConflict, nil)
	ErrOrderWithdrawn   = errors.New("ORDER_WITHDRAWN", "Withdrawn orders cannot be deleted", http.StatusConflict, nil)
)

func invalidTransition(from, to entity.OrderStatus) error {
	return errors.New("INVALID_TRANSITION", "Cannot move order from "+string(from)+" to "+string(to), http.StatusBadRequest, nil)
}

func applyProfit(user *entity.User, from, to entity.OrderStatus, profit float64, now time.Time) {
	pending, achieved := entity.ProfitDelta(from, to, profit)
	user.PendingProfits = entity.AddMoney(user.PendingProfits, pending)
	user.AchievedProfits = entity.AddMoney(user.AchievedProfits, achieved)
	user.UpdatedAt = now
}

// NewOrder credits the merchant for a freshly created pending order.
func NewOrder(order *entity.Order, user *entity.User, now time.Time) {
	order.Status = entity.OrderPending
	order.UserPhone = user.Phone
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	applyProfit(user, "", entity.OrderPending, order.Profit, now)
	user.TotalOrders++
}

// Transition validates a manual status change and applies it to order and user.
func Transition(order *entity.Order, user *entity.User, to entity.OrderStatus, now time.Time) error {
	from := order.Status
	if !from.CanTransitionManually(to) {
		return invalidTransition(from, to)
	}

	order.Status = to
	order.UpdatedAt = now
	if user != nil {
		applyProfit(user, from, to, order.Profit, now)
	}
	return nil
}

// Delete reverses what order contributed to user.
func Delete(order *entity.Order, user *entity.User, now time.Time) error {
	if order.Status == entity.OrderWithdrawn {
		return ErrOrderWithdrawn
	}
	if user != nil {
		applyProfit(user, order.Status, "", order.Profit, now)
		if user.TotalOrders > 0 {
			user.TotalOrders--
		}
	}
	return nil
}

// Claim builds a pending withdrawal over the eligible orders and marks them withdrawn.
// candidates may contain any of the user's orders; only completed orders with profit are
// claimed. It returns the claimed subset.
func Claim(requestID string, user *entity.User, candidates []*entity.Order, hasPending bool, input repository.ClaimInput, now time.Time) (*entity.WithdrawRequest, []*entity.Order, error) {
	if hasPending {
		return nil, nil, ErrPendingExists
	}

	var claimed []*entity.Order
	for _, o := range candidates {
		if o.UserID == user.ID && o.Status == entity.OrderCompleted && o.Profit > 0 {
			claimed = append(claimed, o)
		}
	}
	if len(claimed) == 0 {
		return nil, nil, ErrNoEligibleOrders
	}

	amount := entity.SumProfit(claimed)
	if input.ExpectedAmount != nil && *input.ExpectedAmount != amount {
		return nil, nil, errors.New("AMOUNT_MISMATCH", "Requested amount does not match available profit", http.StatusBadRequest, nil)
	}

	ids := make([]string, 0, len(claimed))
	for _, o := range claimed {
		applyProfit(user, o.Status, entity.OrderWithdrawn, o.Profit, now)
		o.Status = entity.OrderWithdrawn
		o.WithdrawRequestID = requestID
		o.UpdatedAt = now
		ids = append(ids, o.ID)
	}

	req := &entity.WithdrawRequest{
		ID:             requestID,
		UserID:         user.ID,
		UserPhone:      user.Phone,
		Amount:         amount,
		Method:         input.Method,
		AccountDetails: input.AccountDetails,
		Status:         entity.WithdrawPending,
		OrderIDs:       ids,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return req, claimed, nil
}

// Resolve decides a pending request. claimed must be the documents for req.OrderIDs that
// still exist. On rejection it returns the orders that were restored; only orders still
// withdrawn under this request are touched. The bool is false when req was already in the
// target status and nothing must be written.
func Resolve(req *entity.WithdrawRequest, user *entity.User, claimed []*entity.Order, input repository.ResolveInput, now time.Time) (bool, []*entity.Order, error) {
	if !entity.IsWithdrawResolution(input.Status) {
		return false, nil, errors.BadRequest("Status must be completed or rejected", nil)
	}
	if req.Status == input.Status {
		return false, nil, nil
	}
	if req.Status != entity.WithdrawPending {
		return false, nil, errors.Conflict("Withdrawal request already " + req.Status)
	}

	req.Status = input.Status
	req.ProcessedBy = input.AdminID
	req.AdminNotes = input.Notes
	req.ProcessedAt = &now
	req.UpdatedAt = now

	if input.Status == entity.WithdrawCompleted {
		return true, nil, nil
	}

	var restored []*entity.Order
	for _, o := range claimed {
		if o.WithdrawRequestID != req.ID || !o.Status.CanTransitionByLedger(entity.OrderCompleted) {
			continue
		}
		o.Status = entity.OrderCompleted
		o.WithdrawRequestID = ""
		o.UpdatedAt = now
		restored = append(restored, o)
	}

	// the full claimed amount goes back even if an order vanished meanwhile
	if user != nil {
		user.AchievedProfits = entity.AddMoney(user.AchievedProfits, req.Amount)
		user.UpdatedAt = now
	}
	return true, restored, nil
}
