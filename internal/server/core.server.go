package server

import (
	"context"
	"net/http"

	"settlement-service/internal/config"
	hrest "settlement-service/internal/handler/rest"
	"settlement-service/internal/pub"
	"settlement-service/internal/repository"
	"settlement-service/internal/usecase"
	"settlement-service/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewSettlementServer wires the service and returns the HTTP server plus
// a cleanup func that releases the pool, redis and kafka connections.
func NewSettlementServer(cfg config.AppConfig, logger *zap.Logger) (*http.Server, func(), error) {
	// --- DB connection ---
	dbpool, err := config.ConnectDB(logger)
	if err != nil {
		return nil, nil, err
	}

	if err := repository.Migrate(context.Background(), dbpool); err != nil {
		dbpool.Close()
		return nil, nil, err
	}

	// --- Redis client ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	// --- Event publisher ---
	publisher := pub.NewTransactionEventPublisher(cfg.KafkaBrokers, logger)

	refs := utils.NewRefGenerator("TXN")

	// --- Repositories ---
	workRepo := repository.NewWorkRepo(dbpool)
	walletRepo := repository.NewWalletRepo(dbpool)
	transactionRepo := repository.NewTransactionRepo(dbpool)
	commissionRepo := repository.NewCommissionRepo(dbpool)
	purchaseRepo := repository.NewPurchaseRepo(dbpool)
	withdrawalRepo := repository.NewWithdrawalRepo(dbpool)
	settingsRepo := repository.NewSettingsRepo(dbpool)
	txManager := repository.NewTxManager(dbpool)

	// --- Usecases ---
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, rdb, cfg.SettingsCacheTTL, logger)
	settlementUC := usecase.NewSettlementUsecase(
		txManager,
		workRepo,
		walletRepo,
		transactionRepo,
		commissionRepo,
		purchaseRepo,
		settingsUC,
		publisher,
		refs,
		logger,
		cfg.UnitOfWorkTimeout,
	)
	withdrawalUC := usecase.NewWithdrawalUsecase(
		txManager,
		walletRepo,
		withdrawalRepo,
		transactionRepo,
		settingsUC,
		publisher,
		refs,
		logger,
		cfg.UnitOfWorkTimeout,
	)
	walletUC := usecase.NewWalletUsecase(walletRepo, logger)
	reportUC := usecase.NewReportUsecase(commissionRepo)

	// --- REST handlers ---
	paymentHandler := hrest.NewPaymentHandler(settlementUC)
	walletHandler := hrest.NewWalletHandler(walletUC, withdrawalUC)
	adminHandler := hrest.NewAdminHandler(settingsUC, reportUC)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: hrest.NewRouter(paymentHandler, walletHandler, adminHandler),
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("closing event publisher", zap.Error(err))
		}
		if err := rdb.Close(); err != nil {
			logger.Warn("closing redis client", zap.Error(err))
		}
		dbpool.Close()
	}

	return srv, cleanup, nil
}
