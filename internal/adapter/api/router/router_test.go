package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dukkan/internal/adapter/api"
	"dukkan/internal/adapter/api/handler"
	"dukkan/internal/adapter/api/middleware"
	"dukkan/internal/adapter/repository/memory"
	"dukkan/internal/domain/advisor"
	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/cache"
	"dukkan/internal/infrastructure/ratelimit"
	"dukkan/internal/infrastructure/websocket"
	"dukkan/internal/usecase"
	"dukkan/pkg/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type server struct {
	t     *testing.T
	e     *echo.Echo
	store *repository.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memory.NewStore()
	kv := cache.NewMemoryStore()
	limiter := ratelimit.NewRateLimiter(kv, ratelimit.Policy{Limit: 1000, Window: time.Minute})
	tokens := auth.NewTokenManager("router-test", 3600)

	notifications := usecase.NewNotificationUseCase(store.Notifications, store.Users, nil, nil, websocket.NewManager())
	products := usecase.NewProductUseCase(store.Products, store.Categories)
	stats := usecase.NewStatsUseCase(store.Users, store.Products, store.Orders, store.Withdrawals)
	authUseCase := usecase.NewAuthUseCase(store.Users, tokens, limiter, kv, service.LogSMSService{}, 10*time.Minute)

	handler.Setup(handler.UseCases{
		Auth:          authUseCase,
		Users:         usecase.NewUserUseCase(store.Users),
		Categories:    usecase.NewCategoryUseCase(store.Categories),
		Products:      products,
		Orders:        usecase.NewOrderUseCase(store.Orders, store.Products, store.Customers, store.Settings, store.Ledger, notifications),
		Customers:     usecase.NewCustomerUseCase(store.Customers),
		Withdrawals:   usecase.NewWithdrawUseCase(store.Withdrawals, store.Users, store.Ledger, notifications),
		Notifications: notifications,
		Banners:       usecase.NewBannerUseCase(store.Banners),
		Cart:          usecase.NewCartUseCase(store.Carts, store.Products),
		SavedProducts: usecase.NewSavedProductUseCase(store.SavedProducts, store.Products),
		Settings:      usecase.NewSettingUseCase(store.Settings),
		Uploads:       usecase.NewUploadUseCase(nil),
		Stats:         stats,
		Advisor:       usecase.NewAdvisorUseCase(stats, products, nil, advisor.NewTable(advisor.DefaultBlocks)),
	})

	e := echo.New()
	e.Validator = api.NewValidator()
	Setup(e,
		middleware.NewAuthMiddleware(authUseCase),
		middleware.NewAdminMiddleware(),
		limiter,
		handler.NewWebSocketHandler(websocket.NewManager(), nil),
		handler.NewHealthHandler("memory"),
	)
	return &server{t: t, e: e, store: store}
}

func (s *server) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSON || bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (s *server) seedAdmin(phone, password string) {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(s.t, err)
	require.NoError(s.t, s.store.Users.Create(context.Background(), &entity.User{
		ID: "admin", Name: "Admin", Phone: phone, PasswordHash: string(hash), Role: entity.RoleAdmin,
	}))
}

func (s *server) login(phone, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"phone": phone, "password": password})
	require.Equal(s.t, http.StatusOK, code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend":"memory"`)
}

func TestAuthAndAccessControl(t *testing.T) {
	s := newServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "تاجر", "phone": "07701111111", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	code, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "x", "phone": "0770"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/auth/check-user", "", map[string]string{"phone": "07701111111"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[map[string]bool](t, env)["exists"])

	token := s.login("07701111111", "secret1")

	code, _ = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, env = s.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, _ = s.do(http.MethodPost, "/api/uploads", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestForceLogoutOverHTTP(t *testing.T) {
	s := newServer(t)
	s.seedAdmin("07800000000", "adminpass")
	admin := s.login("07800000000", "adminpass")

	code, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "تاجر", "phone": "07701111111", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	reg := decode[struct {
		User  entity.User `json:"user"`
		Token string      `json:"token"`
	}](t, env)

	code, _ = s.do(http.MethodPost, "/api/users/force-logout", admin, map[string]string{"userId": reg.User.ID})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/auth/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOrderAndWithdrawalFlow(t *testing.T) {
	s := newServer(t)
	s.seedAdmin("07800000000", "adminpass")
	admin := s.login("07800000000", "adminpass")

	code, env := s.do(http.MethodPost, "/api/categories", admin, map[string]string{"name": "ملابس"})
	require.Equal(t, http.StatusCreated, code)
	category := decode[entity.Category](t, env)

	code, env = s.do(http.MethodPost, "/api/products", admin, map[string]interface{}{
		"name": "قميص", "price": 10000, "minPrice": 12000, "maxPrice": 20000, "stock": 5, "categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	product := decode[entity.Product](t, env)

	code, env = s.do(http.MethodPost, "/api/products", admin, map[string]interface{}{
		"name": "خطأ", "price": 1, "minPrice": 9, "maxPrice": 2, "categoryId": category.ID,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PRICE_RANGE", env.Error.Code)

	code, _ = s.do(http.MethodPut, "/api/settings/delivery_price_default", admin, map[string]string{"value": "5000"})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "تاجر", "phone": "07701111111", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	merchant := s.login("07701111111", "secret1")

	code, env = s.do(http.MethodPost, "/api/orders", merchant, map[string]interface{}{
		"customer": map[string]string{"name": "زبون", "phone": "07502222222", "address": "المنصور", "province": "بغداد"},
		"items":    []map[string]interface{}{{"productId": product.ID, "quantity": 2, "sellingPrice": 15000}},
	})
	require.Equal(t, http.StatusCreated, code)
	order := decode[entity.Order](t, env)
	assert.Equal(t, 10000.0, order.Profit)
	assert.Equal(t, 5000.0, order.DeliveryFee)

	code, env = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", admin, map[string]string{"status": "withdrawn"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	code, _ = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", merchant, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", admin, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/withdraw-requests", merchant, map[string]interface{}{"method": "zaincash", "amount": 10000})
	require.Equal(t, http.StatusCreated, code)
	request := decode[entity.WithdrawRequest](t, env)

	code, env = s.do(http.MethodPost, "/api/withdraw-requests", merchant, map[string]interface{}{"method": "zaincash"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "WITHDRAW_PENDING", env.Error.Code)

	code, env = s.do(http.MethodDelete, "/api/orders/"+order.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ORDER_WITHDRAWN", env.Error.Code)

	code, _ = s.do(http.MethodPatch, "/api/withdraw-requests/"+request.ID+"/status", admin, map[string]string{"status": "rejected", "adminNotes": "رقم خاطئ"})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPut, "/api/withdraw-requests/"+request.ID, admin, map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodPut, "/api/withdraw-requests/"+request.ID, admin, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/auth/me", merchant, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[entity.User](t, env)
	assert.Equal(t, 10000.0, me.AchievedProfits)

	code, env = s.do(http.MethodGet, "/api/notifications?unread=true", merchant, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	assert.Equal(t, int64(2), page.Total)

	code, env = s.do(http.MethodGet, "/api/customers", admin, nil)
	require.Equal(t, http.StatusOK, code)
	customers := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	assert.Equal(t, int64(1), customers.Total)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/export", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "orders-")
}

func TestAdvisorAndUploadsWithoutProviders(t *testing.T) {
	s := newServer(t)
	s.seedAdmin("07800000000", "adminpass")
	admin := s.login("07800000000", "adminpass")

	code, env := s.do(http.MethodPost, "/api/ai/marketing-strategy", admin, map[string]string{})
	require.Equal(t, http.StatusOK, code)
	answer := decode[usecase.AdvisorAnswer](t, env)
	assert.Equal(t, usecase.SourceFallback, answer.Source)
	assert.Equal(t, advisor.TopicMarketing, answer.Topic)

	code, _ = s.do(http.MethodPost, "/api/ai/unknown", admin, map[string]string{"question": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[advisor.Stats](t, env).TotalUsers)
}

func TestBannersVisibility(t *testing.T) {
	s := newServer(t)
	s.seedAdmin("07800000000", "adminpass")
	admin := s.login("07800000000", "adminpass")

	inactive := false
	code, _ := s.do(http.MethodPost, "/api/banners", admin, map[string]interface{}{"title": "a", "imageUrl": "https://cdn.example/a.png"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/banners", admin, map[string]interface{}{"title": "b", "imageUrl": "https://cdn.example/b.png", "isActive": &inactive})
	require.Equal(t, http.StatusCreated, code)

	_, env := s.do(http.MethodGet, "/api/banners?all=true", "", nil)
	assert.Len(t, decode[[]entity.Banner](t, env), 1)

	_, env = s.do(http.MethodGet, "/api/banners?all=true", admin, nil)
	assert.Len(t, decode[[]entity.Banner](t, env), 2)
}
