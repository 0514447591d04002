package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vendora/vendora-commerce-service/config"
	"github.com/vendora/vendora-commerce-service/internal/router"
	"github.com/vendora/vendora-commerce-service/pkg/broker"
	"github.com/vendora/vendora-commerce-service/pkg/cache"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/postgres"
	"github.com/vendora/vendora-commerce-service/pkg/search"
	"go.uber.org/zap"

	catH "github.com/vendora/vendora-commerce-service/internal/category/handler"
	catRepoPkg "github.com/vendora/vendora-commerce-service/internal/category/repository"
	catUCPkg "github.com/vendora/vendora-commerce-service/internal/category/usecase"

	engH "github.com/vendora/vendora-commerce-service/internal/engagement/handler"
	engRepoPkg "github.com/vendora/vendora-commerce-service/internal/engagement/repository"
	engUCPkg "github.com/vendora/vendora-commerce-service/internal/engagement/usecase"

	invH "github.com/vendora/vendora-commerce-service/internal/inventory/handler"
	invListenerPkg "github.com/vendora/vendora-commerce-service/internal/inventory/listener"
	invRepoPkg "github.com/vendora/vendora-commerce-service/internal/inventory/repository"
	invUCPkg "github.com/vendora/vendora-commerce-service/internal/inventory/usecase"

	orderH "github.com/vendora/vendora-commerce-service/internal/order/handler"
	orderRepoPkg "github.com/vendora/vendora-commerce-service/internal/order/repository"
	orderUCPkg "github.com/vendora/vendora-commerce-service/internal/order/usecase"

	prodH "github.com/vendora/vendora-commerce-service/internal/product/handler"
	prodRepoPkg "github.com/vendora/vendora-commerce-service/internal/product/repository"
	prodUCPkg "github.com/vendora/vendora-commerce-service/internal/product/usecase"

	rankH "github.com/vendora/vendora-commerce-service/internal/ranking/handler"
	rankRepoPkg "github.com/vendora/vendora-commerce-service/internal/ranking/repository"
	rankUCPkg "github.com/vendora/vendora-commerce-service/internal/ranking/usecase"

	statsH "github.com/vendora/vendora-commerce-service/internal/stats/handler"
	statsRepoPkg "github.com/vendora/vendora-commerce-service/internal/stats/repository"
	statsUCPkg "github.com/vendora/vendora-commerce-service/internal/stats/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	statsRepo := statsRepoPkg.NewPGRepository(db)
	rankRepo := rankRepoPkg.NewPGRepository(db)
	engRepo := engRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()

	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderTopic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search features limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	statsUC := statsUCPkg.NewStatsUseCase(statsRepo, redisClient, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, statsUC, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	engUC := engUCPkg.NewEngagementUseCase(engRepo, statsUC, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, kafkaProducer, statsUC, engUC, appLogger)
	rankUC := rankUCPkg.NewRankingUseCase(rankRepo, redisClient, appLogger)

	// 6.5 Initialize Listeners
	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, orderUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go invListener.Start(ctx)

	// 7. Initialize Handlers
	mux := router.New(router.Config{
		Logger:     appLogger,
		Product:    prodH.NewProductHandler(prodUC, appLogger),
		Category:   catH.NewCategoryHandler(catUC, appLogger),
		Inventory:  invH.NewInventoryHandler(invUC, appLogger),
		Order:      orderH.NewOrderHandler(orderUC, appLogger),
		Stats:      statsH.NewStatsHandler(statsUC, appLogger),
		Ranking:    rankH.NewRankingHandler(rankUC, appLogger),
		Engagement: engH.NewEngagementHandler(engUC, appLogger),
	})

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
