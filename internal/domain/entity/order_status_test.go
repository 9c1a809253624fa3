package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered,
	OrderCompleted, OrderRejected, OrderCancelled, OrderWithdrawn,
}

func TestManualTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCompleted, true},
		{OrderProcessing, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderDelivered, OrderCompleted, true},
		{OrderShipped, OrderCancelled, true},
		{OrderProcessing, OrderPending, false},
		{OrderDelivered, OrderRejected, false},
		{OrderCompleted, OrderWithdrawn, false},
		{OrderWithdrawn, OrderCompleted, false},
		{OrderRejected, OrderPending, false},
		{OrderCancelled, OrderCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionManually(tt.to))
		})
	}
}

func TestTerminalStatusesHaveNoManualExit(t *testing.T) {
	for _, from := range []OrderStatus{OrderCompleted, OrderRejected, OrderCancelled, OrderWithdrawn} {
		for _, to := range allStatuses {
			assert.False(t, from.CanTransitionManually(to), "%s -> %s", from, to)
		}
	}
}

func TestLedgerTransitions(t *testing.T) {
	assert.True(t, OrderCompleted.CanTransitionByLedger(OrderWithdrawn))
	assert.True(t, OrderWithdrawn.CanTransitionByLedger(OrderCompleted))
	assert.False(t, OrderDelivered.CanTransitionByLedger(OrderWithdrawn))
	assert.False(t, OrderPending.CanTransitionByLedger(OrderCompleted))
}

func TestProfitDelta(t *testing.T) {
	tests := []struct {
		name              string
		from, to          OrderStatus
		pending, achieved float64
	}{
		{"created", "", OrderPending, 100, 0},
		{"open to open", OrderPending, OrderShipped, 0, 0},
		{"delivered", OrderShipped, OrderDelivered, -100, 100},
		{"delivered to completed", OrderDelivered, OrderCompleted, 0, 0},
		{"rejected", OrderPending, OrderRejected, -100, 0},
		{"claimed", OrderCompleted, OrderWithdrawn, 0, -100},
		{"reversed", OrderWithdrawn, OrderCompleted, 0, 100},
		{"deleted pending", OrderPending, "", -100, 0},
		{"deleted completed", OrderCompleted, "", 0, -100},
		{"deleted cancelled", OrderCancelled, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := ProfitDelta(tt.from, tt.to, 100)
			assert.Equal(t, tt.pending, p)
			assert.Equal(t, tt.achieved, a)
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("lost").Valid())
}
