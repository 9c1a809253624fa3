package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dukkan/internal/adapter/api"
	"dukkan/internal/adapter/api/handler"
	apimiddleware "dukkan/internal/adapter/api/middleware"
	"dukkan/internal/adapter/api/router"
	"dukkan/internal/adapter/repository"
	"dukkan/internal/adapter/repository/memory"
	"dukkan/internal/domain/advisor"
	domainrepo "dukkan/internal/domain/repository"
	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/cache"
	"dukkan/internal/infrastructure/firebase"
	"dukkan/internal/infrastructure/ratelimit"
	"dukkan/internal/infrastructure/scheduler"
	"dukkan/internal/infrastructure/storage"
	"dukkan/internal/infrastructure/websocket"
	"dukkan/internal/usecase"
	"dukkan/pkg/auth"
	"dukkan/pkg/config"
	"dukkan/pkg/logger"
	"dukkan/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("Failed to load configuration")
	}

	format := cfg.LogFormat
	if !cfg.IsDevelopment() && format == "console" {
		format = "json"
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal().Err(err).Msg("Server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	var fb *firebase.App
	if cfg.StorageBackend == "firestore" || cfg.FCMEnabled {
		app, err := firebase.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		fb = app
	}

	var store *domainrepo.Store
	switch cfg.StorageBackend {
	case "firestore":
		store = repository.NewFirestoreStore(fb.Firestore)
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on restart")
		store = memory.NewStore()
	default:
		return errors.New("STORAGE_BACKEND must be firestore or memory, got " + cfg.StorageBackend)
	}

	var kv cache.Store
	var jobs []scheduler.Job
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer redisStore.Close()
		kv = redisStore
	} else {
		memStore := cache.NewMemoryStore()
		jobs = append(jobs, scheduler.Job{
			Name: "cache-sweep",
			Spec: "@every 5m",
			Run: func() {
				if n := memStore.Sweep(); n > 0 {
					logger.Debug("Swept %d expired cache keys", n)
				}
			},
		})
		kv = memStore
	}

	limiter := ratelimit.NewRateLimiter(kv, ratelimit.Policy{Limit: int64(cfg.RateLimitPerMinute), Window: time.Minute}).
		WithPolicy(apimiddleware.ActionAPI, ratelimit.Policy{Limit: int64(cfg.RateLimitPerMinute), Window: time.Minute}).
		WithPolicy(apimiddleware.ActionAuth, ratelimit.Policy{Limit: 30, Window: time.Minute}).
		WithPolicy(usecase.ActionLogin, ratelimit.Policy{Limit: int64(cfg.AuthAttemptsLimit), Window: 15 * time.Minute}).
		WithPolicy(usecase.ActionResetCode, ratelimit.Policy{Limit: 3, Window: time.Hour}).
		WithPolicy(usecase.ActionVerifyCode, ratelimit.Policy{Limit: int64(cfg.AuthAttemptsLimit), Window: 15 * time.Minute})

	var sms service.SMSService = service.LogSMSService{}
	if cfg.SMSAPIURL != "" {
		sms = service.NewGatewaySMSService(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSSender)
	} else {
		logger.Warn("SMS_API_URL not set, reset codes are only logged")
	}

	var ai service.AIService
	if cfg.AIAPIKey != "" {
		ai = service.NewOpenAIService(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
	} else {
		logger.Warn("AI_API_KEY not set, advisor answers come from the fallback table")
	}

	var push service.PushService
	if cfg.FCMEnabled {
		client, err := firebase.NewFirebaseMessagingClient(ctx, fb)
		if err != nil {
			return err
		}
		push = client
	}

	var files service.FileUploadService
	if cfg.StorageBucket != "" {
		client, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, firebase.ClientOptions(cfg)...)
		if err != nil {
			return err
		}
		defer client.Close()
		files = client
	} else {
		logger.Warn("STORAGE_BUCKET not set, uploads are disabled")
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	authUseCase := usecase.NewAuthUseCase(store.Users, tokens, limiter, kv, sms, cfg.ResetCodeTTL)
	userUseCase := usecase.NewUserUseCase(store.Users)
	notificationUseCase := usecase.NewNotificationUseCase(store.Notifications, store.Users, push, firebase.IsStaleToken, wsManager)
	productUseCase := usecase.NewProductUseCase(store.Products, store.Categories)
	statsUseCase := usecase.NewStatsUseCase(store.Users, store.Products, store.Orders, store.Withdrawals)

	if cfg.AdminPhone != "" && cfg.AdminPassword != "" {
		bootstrap := usecase.NewBootstrapUseCase(store.Users, store.Settings)
		if _, _, err := bootstrap.EnsureAdmin(ctx, usecase.AdminInput{
			Name:     cfg.AdminName,
			Phone:    cfg.AdminPhone,
			Password: cfg.AdminPassword,
		}); err != nil {
			return err
		}
		if _, err := bootstrap.SeedSettings(ctx, false); err != nil {
			return err
		}
	}

	handler.Setup(handler.UseCases{
		Auth:          authUseCase,
		Users:         userUseCase,
		Categories:    usecase.NewCategoryUseCase(store.Categories),
		Products:      productUseCase,
		Orders:        usecase.NewOrderUseCase(store.Orders, store.Products, store.Customers, store.Settings, store.Ledger, notificationUseCase),
		Customers:     usecase.NewCustomerUseCase(store.Customers),
		Withdrawals:   usecase.NewWithdrawUseCase(store.Withdrawals, store.Users, store.Ledger, notificationUseCase),
		Notifications: notificationUseCase,
		Banners:       usecase.NewBannerUseCase(store.Banners),
		Cart:          usecase.NewCartUseCase(store.Carts, store.Products),
		SavedProducts: usecase.NewSavedProductUseCase(store.SavedProducts, store.Products),
		Settings:      usecase.NewSettingUseCase(store.Settings),
		Uploads:       usecase.NewUploadUseCase(files),
		Stats:         statsUseCase,
		Advisor:       usecase.NewAdvisorUseCase(statsUseCase, productUseCase, ai, advisor.NewTable(advisor.DefaultBlocks)),
	})

	jobs = append(jobs, scheduler.Job{
		Name: "lift-expired-bans",
		Spec: "@every 1m",
		Run: func() {
			if _, err := userUseCase.LiftExpiredBans(context.Background()); err != nil {
				logger.Error("Failed to lift expired bans: %v", err)
			}
		},
	})
	sched := scheduler.NewScheduler(jobs...)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.L().Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = logger.L().Error().Err(v.Error)
			}
			event.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(metrics.Middleware())

	router.Setup(e,
		apimiddleware.NewAuthMiddleware(authUseCase),
		apimiddleware.NewAdminMiddleware(),
		limiter,
		handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins),
		handler.NewHealthHandler(cfg.StorageBackend),
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s (%s backend)", cfg.ServerPort, cfg.StorageBackend)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
