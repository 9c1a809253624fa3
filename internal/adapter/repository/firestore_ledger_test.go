package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/ledger"
	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
)

// emulatorStore connects to the Firestore emulator. Tests using it are skipped when
// FIRESTORE_EMULATOR_HOST is unset.
func emulatorStore(t *testing.T) *repository.Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "dukkan-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewFirestoreStore(client)
}

func emulatorMerchant(t *testing.T, store *repository.Store, orderProfits ...float64) (*entity.User, []string) {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{
		ID:    uuid.NewString(),
		Name:  "تاجر",
		Phone: "077" + uuid.NewString()[:8],
		Role:  entity.RoleCustomer,
	}
	require.NoError(t, store.Users.Create(ctx, user))

	base := time.Now().Add(-time.Hour)
	ids := make([]string, 0, len(orderProfits))
	for i, profit := range orderProfits {
		order := &entity.Order{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Profit:    profit,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Ledger.CreateOrder(ctx, order))
		_, err := store.Ledger.TransitionOrder(ctx, order.ID, entity.OrderCompleted)
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}
	return user, ids
}

func TestFirestoreLedgerWithdrawalRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := emulatorStore(t)
	user, orderIDs := emulatorMerchant(t, store, 5000, 7000, 3000)

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, stored.AchievedProfits)
	assert.Equal(t, 3, stored.TotalOrders)

	req, err := store.Ledger.ClaimWithdrawal(ctx, repository.ClaimInput{UserID: user.ID, Method: "zaincash"})
	require.NoError(t, err)
	assert.Equal(t, 15000.0, req.Amount)
	assert.ElementsMatch(t, orderIDs, req.OrderIDs)

	_, err = store.Ledger.ClaimWithdrawal(ctx, repository.ClaimInput{UserID: user.ID})
	assert.ErrorIs(t, err, ledger.ErrPendingExists)

	err = store.Ledger.DeleteOrder(ctx, orderIDs[0])
	assert.ErrorIs(t, err, ledger.ErrOrderWithdrawn)

	resolved, changed, err := store.Ledger.ResolveWithdrawal(ctx, repository.ResolveInput{RequestID: req.ID, Status: entity.WithdrawRejected, AdminID: "admin"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.WithdrawRejected, resolved.Status)

	_, changed, err = store.Ledger.ResolveWithdrawal(ctx, repository.ResolveInput{RequestID: req.ID, Status: entity.WithdrawRejected})
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = store.Ledger.ResolveWithdrawal(ctx, repository.ResolveInput{RequestID: req.ID, Status: entity.WithdrawCompleted})
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored, err = store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, stored.AchievedProfits)

	for _, id := range orderIDs {
		order, err := store.Orders.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCompleted, order.Status)
		assert.Empty(t, order.WithdrawRequestID)
	}
}

func TestFirestoreLedgerConcurrentResolutions(t *testing.T) {
	ctx := context.Background()
	store := emulatorStore(t)
	user, orderIDs := emulatorMerchant(t, store, 4000, 6000)

	req, err := store.Ledger.ClaimWithdrawal(ctx, repository.ClaimInput{UserID: user.ID, Method: "zaincash"})
	require.NoError(t, err)

	const workers = 6
	var wg sync.WaitGroup
	var changes atomic.Int32
	for i := 0; i < workers; i++ {
		to := entity.WithdrawRejected
		if i%2 == 0 {
			to = entity.WithdrawCompleted
		}
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			_, changed, err := store.Ledger.ResolveWithdrawal(ctx, repository.ResolveInput{RequestID: req.ID, Status: to, AdminID: "admin"})
			if err != nil {
				// Contended transactions may exhaust their retries.
				assert.True(t, errors.Is(err, "CONFLICT") || status.Code(err) == codes.Aborted, "unexpected error: %v", err)
				return
			}
			if changed {
				changes.Add(1)
			}
		}(to)
	}
	wg.Wait()

	assert.EqualValues(t, 1, changes.Load())

	final, err := store.Withdrawals.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, entity.IsWithdrawResolution(final.Status))

	wantStatus, wantAchieved := entity.OrderWithdrawn, 0.0
	if final.Status == entity.WithdrawRejected {
		wantStatus, wantAchieved = entity.OrderCompleted, 10000.0
	}
	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, wantAchieved, stored.AchievedProfits)
	for _, id := range orderIDs {
		order, err := store.Orders.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, wantStatus, order.Status)
	}
}

func TestFirestoreProductWritesCheckCategory(t *testing.T) {
	ctx := context.Background()
	store := emulatorStore(t)

	category := &entity.Category{ID: uuid.NewString(), Name: "ملابس"}
	require.NoError(t, store.Categories.Create(ctx, category))

	err := store.Products.Create(ctx, &entity.Product{ID: uuid.NewString(), Name: "حقيبة", CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, repository.ErrUnknownCategory)

	product := &entity.Product{
		ID:         uuid.NewString(),
		Name:       "قميص",
		CategoryID: category.ID,
		Stock:      2,
		Status:     entity.ProductStatusActive,
	}
	require.NoError(t, store.Products.Create(ctx, product))

	err = store.Categories.Delete(ctx, category.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	updated, err := store.Products.UpdateStock(ctx, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusOutOfStock, updated.Status)

	stored, err := store.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
	assert.Equal(t, entity.ProductStatusOutOfStock, stored.Status)

	require.NoError(t, store.Products.Delete(ctx, product.ID))
	require.NoError(t, store.Categories.Delete(ctx, category.ID))

	product.ID = uuid.NewString()
	err = store.Products.Create(ctx, product)
	assert.ErrorIs(t, err, repository.ErrUnknownCategory)
}

func TestFirestoreBroadcastFanOut(t *testing.T) {
	ctx := context.Background()
	store := emulatorStore(t)
	user, _ := emulatorMerchant(t, store)

	batch := make([]*entity.Notification, 0, 3)
	for i := 0; i < 3; i++ {
		batch = append(batch, &entity.Notification{ID: uuid.NewString(), UserID: user.ID, Title: "عرض", CreatedAt: time.Now()})
	}
	require.NoError(t, store.Notifications.CreateMany(ctx, batch))

	_, total, err := store.Notifications.ListByUser(ctx, user.ID, true, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	n, err := store.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
