package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"go-banking-core/config"
	"go-banking-core/db"
	"go-banking-core/handler"
	"go-banking-core/logger"
	"go-banking-core/repository"
	"go-banking-core/router"
	"go-banking-core/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running database migrations: %v", err)
	}

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	// The cache is an optimization; the API stays up without Redis.
	var cache service.ICacheClient
	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.WithError(err).Warn("Redis unavailable, account listing cache disabled")
	} else {
		cache = redisClient
		defer redisClient.Close()
	}

	var notifier service.INotificationService
	if kafkaWriter := db.NewKafkaWriter(); kafkaWriter != nil {
		notifier = service.NewKafkaNotificationService(kafkaWriter)
		defer kafkaWriter.Close()
	} else {
		notifier = service.NewEmailNotificationService()
	}

	largeTxThreshold, err := decimal.NewFromString(config.AppConfig.Bank.LargeTransactionThreshold)
	if err != nil {
		logger.Log.Fatalf("Invalid large_transaction_threshold: %v", err)
	}
	internationalFee, err := decimal.NewFromString(config.AppConfig.Bank.InternationalTransferFee)
	if err != nil {
		logger.Log.Fatalf("Invalid international_transfer_fee: %v", err)
	}

	accountRepo := repository.NewAccountRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	customerService := service.NewCustomerService(customerRepo)
	accountService := service.NewAccountService(database, accountRepo, customerRepo, cache)
	transactionService := service.NewTransactionService(database, accountRepo, transactionRepo, notifier, cache, largeTxThreshold, internationalFee)
	feeService := service.NewFeeService(database, accountRepo, customerRepo, transactionRepo)

	customerHandler := handler.NewCustomerHandler(customerService)
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	feeHandler := handler.NewFeeHandler(feeService)

	r := router.NewRouter(customerHandler, accountHandler, transactionHandler, feeHandler)

	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
