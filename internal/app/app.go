package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/config"
	"conectacg_backend/internal/email"
	"conectacg_backend/internal/handlers"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/routes"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/webhook"
	"conectacg_backend/internal/workers"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Run boots the whole service: config, database, redis, the dependency
// graph, background workers and the HTTP server, then blocks until SIGINT
// or SIGTERM and drains in-flight requests.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	apperrors.Debug = cfg.Server.Env == "development"

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	redisClient := openRedis(cfg)
	limiter := middleware.NewRateLimiter(redisClient)

	var mailer email.Mailer
	smtp := email.NewSMTPMailer(cfg)
	if smtp.Configured() {
		mailer = smtp
	} else {
		logger.Warn("smtp not configured, email channels disabled")
	}

	container := services.NewServiceContainer(db, cfg, mailer, webhook.NewClient())
	appHandlers := handlers.NewAppHandlers(container, limiter)
	router := routes.Setup(appHandlers, cfg.Server.Env)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	worker := workers.NewMarketplaceWorker(
		container.Plans,
		container.Alerts,
		repositories.NewPlanRepository(db),
	)
	worker.Start(workerCtx)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("drain http server: %w", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("shutdown complete")
	return nil
}

// openDatabase connects gorm to postgres. TranslateError turns driver
// duplicate-key failures into gorm.ErrDuplicatedKey, which the award-once
// and idempotent-insert paths depend on.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.Server.Env == "development" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func migrate(db *gorm.DB) error {
	// uuid_generate_v4 backs every primary key default.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.UserBadge{},
		&models.UserProfile{},
		&models.Referral{},
		&models.SearchHistory{},
		&models.City{},
		&models.Provider{},
		&models.ProviderAccount{},
		&models.ProviderUser{},
		&models.PaymentTransaction{},
		&models.Plan{},
		&models.PlanClick{},
		&models.PlanConversion{},
		&models.PlanDailyMetric{},
		&models.PriceSnapshot{},
		&models.Review{},
		&models.Lead{},
		&models.Favorite{},
		&models.PriceAlert{},
		&models.Event{},
	)
}

// openRedis returns nil when no address is configured; the rate limiter
// then fails open.
func openRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis not configured, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable, rate limiting disabled")
		return nil
	}
	return client
}
