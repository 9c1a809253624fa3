package entity

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderRejected   OrderStatus = "rejected"
	OrderCancelled  OrderStatus = "cancelled"
	OrderWithdrawn  OrderStatus = "withdrawn"
)

var manualTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderShipped, OrderDelivered, OrderCompleted, OrderRejected, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderDelivered, OrderCompleted, OrderRejected, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCompleted, OrderRejected, OrderCancelled},
	OrderDelivered:  {OrderCompleted},
}

// ledger-only moves, driven by withdrawal claim and reversal
var ledgerTransitions = map[OrderStatus]OrderStatus{
	OrderCompleted: OrderWithdrawn,
	OrderWithdrawn: OrderCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered,
		OrderCompleted, OrderRejected, OrderCancelled, OrderWithdrawn:
		return true
	}
	return false
}

// CanTransitionManually reports whether an admin may move an order from s to to.
func (s OrderStatus) CanTransitionManually(to OrderStatus) bool {
	for _, allowed := range manualTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionByLedger reports whether the withdrawal ledger may move an order from s to to.
func (s OrderStatus) CanTransitionByLedger(to OrderStatus) bool {
	next, ok := ledgerTransitions[s]
	return ok && next == to
}

type profitBucket int

const (
	bucketNone profitBucket = iota
	bucketPending
	bucketAchieved
)

func (s OrderStatus) bucket() profitBucket {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped:
		return bucketPending
	case OrderDelivered, OrderCompleted:
		return bucketAchieved
	default:
		// rejected and cancelled earn nothing; withdrawn profit was already paid out of achieved
		return bucketNone
	}
}

// ProfitDelta returns how a user's pendingProfits and achievedProfits change when an order
// carrying profit moves from one status to another. An empty from means the order is new,
// an empty to means it is being deleted.
func ProfitDelta(from, to OrderStatus, profit float64) (pending, achieved float64) {
	fb, tb := bucketNone, bucketNone
	if from != "" {
		fb = from.bucket()
	}
	if to != "" {
		tb = to.bucket()
	}
	if fb == tb {
		return 0, 0
	}

	switch fb {
	case bucketPending:
		pending -= profit
	case bucketAchieved:
		achieved -= profit
	}
	switch tb {
	case bucketPending:
		pending += profit
	case bucketAchieved:
		achieved += profit
	}
	return pending, achieved
}
