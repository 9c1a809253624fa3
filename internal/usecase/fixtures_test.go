package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dukkan/internal/adapter/repository/memory"
	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/websocket"
)

type sentNotification struct {
	UserID, Kind, Title, Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) NotifyUser(ctx context.Context, userID, kind, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{userID, kind, title, message})
}

func (n *recordingNotifier) For(userID string) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

type recordingLive struct {
	mu     sync.Mutex
	events map[string][]websocket.Event
}

func (l *recordingLive) SendToUser(userID string, event websocket.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.events == nil {
		l.events = map[string][]websocket.Event{}
	}
	l.events[userID] = append(l.events[userID], event)
}

func (l *recordingLive) Broadcast(event websocket.Event) {}

type stubPush struct {
	err  error
	sent []service.PushMessage
}

func (p *stubPush) Send(ctx context.Context, msg service.PushMessage) error {
	p.sent = append(p.sent, msg)
	return p.err
}

type stubSMS struct {
	err      error
	messages map[string]string
}

func (s *stubSMS) Send(ctx context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	if s.messages == nil {
		s.messages = map[string]string{}
	}
	s.messages[phone] = message
	return nil
}

type stubAI struct {
	answer string
	err    error
	system string
	user   string
}

func (a *stubAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	a.system, a.user = systemPrompt, userPrompt
	return a.answer, a.err
}

func addUser(t *testing.T, store *repository.Store, id, phone, role string) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{ID: id, Name: "user " + id, Phone: phone, Role: role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func ptr[T any](v T) *T { return &v }

func addProduct(t *testing.T, store *repository.Store, id string, price float64, min, max *float64) *entity.Product {
	t.Helper()
	now := time.Now()
	if _, err := store.Categories.GetByID(context.Background(), "cat"); err != nil {
		require.NoError(t, store.Categories.Create(context.Background(), &entity.Category{ID: "cat", Name: "عام", CreatedAt: now, UpdatedAt: now}))
	}
	product := &entity.Product{
		ID: id, Name: "منتج " + id, Price: price, MinPrice: min, MaxPrice: max,
		Stock: 10, Colors: []string{"أحمر", "أسود"}, CategoryID: "cat",
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Products.Create(context.Background(), product))
	return product
}

func newStore() *repository.Store {
	return memory.NewStore()
}
