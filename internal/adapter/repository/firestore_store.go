package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dukkan/internal/domain/repository"
	"dukkan/pkg/errors"
	"dukkan/pkg/utils"
)

const (
	usersCollection         = "users"
	categoriesCollection    = "categories"
	productsCollection      = "products"
	customersCollection     = "customers"
	ordersCollection        = "orders"
	withdrawalsCollection   = "withdraw_requests"
	notificationsCollection = "notifications"
	bannersCollection       = "banners"
	cartCollection          = "cart_items"
	savedCollection         = "saved_products"
	settingsCollection      = "app_settings"
)

// NewFirestoreStore wires every repository onto one Firestore client.
func NewFirestoreStore(client *firestore.Client) *repository.Store {
	return &repository.Store{
		Users:         NewFirestoreUserRepository(client),
		Categories:    NewFirestoreCategoryRepository(client),
		Products:      NewFirestoreProductRepository(client),
		Customers:     NewFirestoreCustomerRepository(client),
		Orders:        NewFirestoreOrderRepository(client),
		Withdrawals:   NewFirestoreWithdrawRepository(client),
		Ledger:        NewFirestoreLedger(client),
		Notifications: NewFirestoreNotificationRepository(client),
		Banners:       NewFirestoreBannerRepository(client),
		Carts:         NewFirestoreCartRepository(client),
		SavedProducts: NewFirestoreSavedProductRepository(client),
		Settings:      NewFirestoreSettingRepository(client),
	}
}

var errNoDocument = status.Error(codes.NotFound, "no matching document")

// notFound turns a gRPC NotFound into the domain error and passes everything else through.
func notFound(resource string, err error) error {
	if status.Code(err) == codes.NotFound {
		return errors.NotFound(resource, err)
	}
	return err
}

// getDoc loads a single document into a T.
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, notFound(resource, err)
	}

	var out T
	if err := doc.DataTo(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// collect drains an iterator into a slice. It never returns a nil slice.
func collect[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, nil
}

// newestFirst sorts in memory so that equality filters do not need composite indexes.
func newestFirst[T any](items []*T, createdAt func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

func window[T any](items []*T, pagination *utils.Pagination) ([]*T, int64) {
	total := int64(len(items))
	if pagination == nil {
		return items, total
	}
	start, end := pagination.Window(len(items))
	return items[start:end], total
}
