package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/ledger"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

// firestoreLedger runs every profit-moving write inside one transaction. Firestore requires
// all reads before the first write, so each method loads everything up front, hands the
// documents to the ledger rules, then writes what changed.
type firestoreLedger struct {
	client *firestore.Client
}

func NewFirestoreLedger(client *firestore.Client) repository.Ledger {
	return &firestoreLedger{
		client: client,
	}
}

func (r *firestoreLedger) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *firestoreLedger) orders() *firestore.CollectionRef {
	return r.client.Collection(ordersCollection)
}

func (r *firestoreLedger) withdrawals() *firestore.CollectionRef {
	return r.client.Collection(withdrawalsCollection)
}

func txGet[T any](tx *firestore.Transaction, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		return nil, notFound(resource, err)
	}
	var out T
	if err := doc.DataTo(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// txUser loads the order owner. A missing owner is not an error: the order still moves but no
// profit is booked.
func txUser(tx *firestore.Transaction, ref *firestore.DocumentRef) (*entity.User, error) {
	user, err := txGet[entity.User](tx, ref, "User")
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return user, err
}

func profitUpdates(user *entity.User) []firestore.Update {
	return []firestore.Update{
		{Path: "pendingProfits", Value: user.PendingProfits},
		{Path: "achievedProfits", Value: user.AchievedProfits},
		{Path: "totalOrders", Value: user.TotalOrders},
		{Path: "updatedAt", Value: user.UpdatedAt},
	}
}

func orderStatusUpdates(order *entity.Order) []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: string(order.Status)},
		{Path: "withdrawRequestId", Value: order.WithdrawRequestID},
		{Path: "updatedAt", Value: order.UpdatedAt},
	}
}

func (r *firestoreLedger) CreateOrder(ctx context.Context, order *entity.Order) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userRef := r.users().Doc(order.UserID)
		user, err := txGet[entity.User](tx, userRef, "User")
		if err != nil {
			return err
		}

		ledger.NewOrder(order, user, time.Now())

		if err := tx.Create(r.orders().Doc(order.ID), order); err != nil {
			return err
		}
		return tx.Update(userRef, profitUpdates(user))
	})
}

func (r *firestoreLedger) TransitionOrder(ctx context.Context, orderID string, to entity.OrderStatus) (*entity.Order, error) {
	var result *entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef := r.orders().Doc(orderID)
		order, err := txGet[entity.Order](tx, orderRef, "Order")
		if err != nil {
			return err
		}
		userRef := r.users().Doc(order.UserID)
		user, err := txUser(tx, userRef)
		if err != nil {
			return err
		}

		if err := ledger.Transition(order, user, to, time.Now()); err != nil {
			return err
		}

		if err := tx.Update(orderRef, orderStatusUpdates(order)); err != nil {
			return err
		}
		if user != nil {
			if err := tx.Update(userRef, profitUpdates(user)); err != nil {
				return err
			}
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreLedger) DeleteOrder(ctx context.Context, orderID string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef := r.orders().Doc(orderID)
		order, err := txGet[entity.Order](tx, orderRef, "Order")
		if err != nil {
			return err
		}
		userRef := r.users().Doc(order.UserID)
		user, err := txUser(tx, userRef)
		if err != nil {
			return err
		}

		if err := ledger.Delete(order, user, time.Now()); err != nil {
			return err
		}

		if err := tx.Delete(orderRef); err != nil {
			return err
		}
		if user != nil {
			return tx.Update(userRef, profitUpdates(user))
		}
		return nil
	})
}

func (r *firestoreLedger) ClaimWithdrawal(ctx context.Context, input repository.ClaimInput) (*entity.WithdrawRequest, error) {
	requestID := uuid.New().String()

	var result *entity.WithdrawRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userRef := r.users().Doc(input.UserID)
		user, err := txGet[entity.User](tx, userRef, "User")
		if err != nil {
			return err
		}

		pendingQuery := r.withdrawals().
			Where("userId", "==", input.UserID).
			Where("status", "==", entity.WithdrawPending).
			Limit(1)
		pending, err := tx.Documents(pendingQuery).GetAll()
		if err != nil {
			return err
		}

		completedQuery := r.orders().
			Where("userId", "==", input.UserID).
			Where("status", "==", string(entity.OrderCompleted))
		docs, err := tx.Documents(completedQuery).GetAll()
		if err != nil {
			return err
		}
		candidates := make([]*entity.Order, 0, len(docs))
		for _, doc := range docs {
			var o entity.Order
			if err := doc.DataTo(&o); err != nil {
				return err
			}
			candidates = append(candidates, &o)
		}
		newestFirst(candidates, func(o *entity.Order) time.Time { return o.CreatedAt })

		req, claimed, err := ledger.Claim(requestID, user, candidates, len(pending) > 0, input, time.Now())
		if err != nil {
			return err
		}

		for _, o := range claimed {
			if err := tx.Update(r.orders().Doc(o.ID), orderStatusUpdates(o)); err != nil {
				return err
			}
		}
		if err := tx.Update(userRef, profitUpdates(user)); err != nil {
			return err
		}
		if err := tx.Create(r.withdrawals().Doc(req.ID), req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreLedger) ResolveWithdrawal(ctx context.Context, input repository.ResolveInput) (*entity.WithdrawRequest, bool, error) {
	var (
		result  *entity.WithdrawRequest
		changed bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false

		reqRef := r.withdrawals().Doc(input.RequestID)
		req, err := txGet[entity.WithdrawRequest](tx, reqRef, "Withdrawal request")
		if err != nil {
			return err
		}
		userRef := r.users().Doc(req.UserID)
		user, err := txUser(tx, userRef)
		if err != nil {
			return err
		}

		refs := make([]*firestore.DocumentRef, 0, len(req.OrderIDs))
		for _, id := range req.OrderIDs {
			refs = append(refs, r.orders().Doc(id))
		}
		claimed := make([]*entity.Order, 0, len(refs))
		if len(refs) > 0 {
			snaps, err := tx.GetAll(refs)
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				if !snap.Exists() {
					continue
				}
				var o entity.Order
				if err := snap.DataTo(&o); err != nil {
					return err
				}
				claimed = append(claimed, &o)
			}
		}

		ok, restored, err := ledger.Resolve(req, user, claimed, input, time.Now())
		result = req
		if err != nil || !ok {
			return err
		}

		for _, o := range restored {
			if err := tx.Update(r.orders().Doc(o.ID), orderStatusUpdates(o)); err != nil {
				return err
			}
		}
		if user != nil && input.Status == entity.WithdrawRejected {
			if err := tx.Update(userRef, profitUpdates(user)); err != nil {
				return err
			}
		}
		changed = true
		return tx.Set(reqRef, req)
	})
	if err != nil {
		return nil, false, err
	}
	return result, changed, nil
}
