// Package app собирает приложение daily-practice: хранилище, кэш сессий,
// почту, платёжного провайдера, HTTP-сервер и планировщик рассылки.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/daily-practice/internal/cache"
	"github.com/magabrotheeeer/daily-practice/internal/config"
	"github.com/magabrotheeeer/daily-practice/internal/generator"
	"github.com/magabrotheeeer/daily-practice/internal/lib/token"
	"github.com/magabrotheeeer/daily-practice/internal/mailer"
	"github.com/magabrotheeeer/daily-practice/internal/migrations"
	"github.com/magabrotheeeer/daily-practice/internal/paymentprovider"
	"github.com/magabrotheeeer/daily-practice/internal/storage"

	authservice "github.com/magabrotheeeer/daily-practice/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/daily-practice/internal/services/payment"
	profileservice "github.com/magabrotheeeer/daily-practice/internal/services/profile"
	questionsservice "github.com/magabrotheeeer/daily-practice/internal/services/questions"
	schedulerservice "github.com/magabrotheeeer/daily-practice/internal/services/scheduler"
)

// App держит собранные зависимости и управляет их жизненным циклом.
type App struct {
	server    *http.Server
	scheduler *schedulerservice.Scheduler
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
}

// New собирает приложение из конфигурации: подключает базу и Redis,
// прогоняет миграции и регистрирует все маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tokenMaker := token.NewMaker(cfg.SessionSecret, cfg.SessionTTL)
	sendgridMailer := mailer.New(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName, logger)
	providerClient := paymentprovider.NewClient(cfg.PaymentSecretKey, cfg.PaymentAPIURL)
	questionGen := generator.New()

	authService := authservice.NewAuthService(db, cacheRedis, tokenMaker, cfg.SessionTTL, cfg.TrialDays)
	profileService := profileservice.NewProfileService(db, logger)
	questionsService := questionsservice.NewQuestionsService(db, questionGen, sendgridMailer,
		cfg.QuestionsPerSubject, logger)
	paymentService := paymentservice.NewPaymentService(db, providerClient, cfg.PaymentPriceID, logger)

	deliveryScheduler := schedulerservice.New(db, questionGen, sendgridMailer, logger,
		cfg.TickInterval, cfg.QuestionsPerSubject)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg,
		authService, profileService, questionsService, paymentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		scheduler: deliveryScheduler,
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и планировщик рассылки. Отмена контекста
// останавливает оба с корректным завершением сервера.
func (a *App) Run(ctx context.Context) error {
	go a.scheduler.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
