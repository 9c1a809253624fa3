package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

func merchantWithOrders() (*entity.User, []*entity.Order) {
	user := &entity.User{ID: "u1", Phone: "07700000001", AchievedProfits: 15000}
	orders := []*entity.Order{
		{ID: "o1", UserID: "u1", Status: entity.OrderCompleted, Profit: 5000},
		{ID: "o2", UserID: "u1", Status: entity.OrderCompleted, Profit: 7000},
		{ID: "o3", UserID: "u1", Status: entity.OrderCompleted, Profit: 3000},
		{ID: "o4", UserID: "u1", Status: entity.OrderPending, Profit: 9000},
		{ID: "o5", UserID: "other", Status: entity.OrderCompleted, Profit: 1000},
	}
	return user, orders
}

func TestClaimAndReject(t *testing.T) {
	now := time.Now()
	user, orders := merchantWithOrders()

	req, claimed, err := Claim("w1", user, orders, false, repository.ClaimInput{UserID: "u1", Method: "zaincash"}, now)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, req.Amount)
	assert.Equal(t, []string{"o1", "o2", "o3"}, req.OrderIDs)
	assert.Len(t, claimed, 3)
	assert.Equal(t, 0.0, user.AchievedProfits)
	for _, o := range claimed {
		assert.Equal(t, entity.OrderWithdrawn, o.Status)
		assert.Equal(t, "w1", o.WithdrawRequestID)
	}
	assert.Equal(t, entity.OrderPending, orders[3].Status)
	assert.Equal(t, entity.OrderCompleted, orders[4].Status)

	changed, restored, err := Resolve(req, user, claimed, repository.ResolveInput{RequestID: "w1", Status: entity.WithdrawRejected, AdminID: "admin"}, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, restored, 3)
	assert.Equal(t, 15000.0, user.AchievedProfits)
	for _, o := range restored {
		assert.Equal(t, entity.OrderCompleted, o.Status)
		assert.Empty(t, o.WithdrawRequestID)
	}

	// retrying the rejection credits nothing further
	changed, restored, err = Resolve(req, user, claimed, repository.ResolveInput{RequestID: "w1", Status: entity.WithdrawRejected}, now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, restored)
	assert.Equal(t, 15000.0, user.AchievedProfits)
}

func TestResolveConflicts(t *testing.T) {
	now := time.Now()
	req := &entity.WithdrawRequest{ID: "w1", Status: entity.WithdrawCompleted, Amount: 100}
	user := &entity.User{ID: "u1"}

	_, _, err := Resolve(req, user, nil, repository.ResolveInput{Status: entity.WithdrawRejected}, now)
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Equal(t, 0.0, user.AchievedProfits)

	_, _, err = Resolve(req, user, nil, repository.ResolveInput{Status: "processing"}, now)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestResolveOnlyRestoresOwnClaims(t *testing.T) {
	now := time.Now()
	req := &entity.WithdrawRequest{ID: "w1", Status: entity.WithdrawPending, Amount: 300, OrderIDs: []string{"a", "b"}}
	user := &entity.User{ID: "u1"}
	claimed := []*entity.Order{
		{ID: "a", Status: entity.OrderWithdrawn, WithdrawRequestID: "w1", Profit: 100},
		{ID: "b", Status: entity.OrderWithdrawn, WithdrawRequestID: "w2", Profit: 200},
	}

	changed, restored, err := Resolve(req, user, claimed, repository.ResolveInput{Status: entity.WithdrawRejected}, now)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, restored, 1)
	assert.Equal(t, "a", restored[0].ID)
	assert.Equal(t, entity.OrderWithdrawn, claimed[1].Status)
}

func TestClaimRules(t *testing.T) {
	now := time.Now()
	user, orders := merchantWithOrders()

	_, _, err := Claim("w1", user, orders, true, repository.ClaimInput{}, now)
	assert.True(t, errors.Is(err, "WITHDRAW_PENDING"))

	_, _, err = Claim("w1", user, orders[3:4], false, repository.ClaimInput{}, now)
	assert.True(t, errors.Is(err, "NO_ELIGIBLE_ORDERS"))

	wrong := 1.0
	_, _, err = Claim("w1", user, orders, false, repository.ClaimInput{ExpectedAmount: &wrong}, now)
	assert.True(t, errors.Is(err, "AMOUNT_MISMATCH"))
	assert.Equal(t, entity.OrderCompleted, orders[0].Status)
}

func TestTransitionAndDelete(t *testing.T) {
	now := time.Now()
	user := &entity.User{ID: "u1"}
	order := &entity.Order{ID: "o1", UserID: "u1", Profit: 250}

	NewOrder(order, user, now)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, 250.0, user.PendingProfits)
	assert.Equal(t, 1, user.TotalOrders)

	require.NoError(t, Transition(order, user, entity.OrderDelivered, now))
	assert.Equal(t, 0.0, user.PendingProfits)
	assert.Equal(t, 250.0, user.AchievedProfits)

	err := Transition(order, user, entity.OrderPending, now)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))

	require.NoError(t, Delete(order, user, now))
	assert.Equal(t, 0.0, user.AchievedProfits)
	assert.Equal(t, 0, user.TotalOrders)

	order.Status = entity.OrderWithdrawn
	assert.True(t, errors.Is(Delete(order, user, now), "ORDER_WITHDRAWN"))
}
