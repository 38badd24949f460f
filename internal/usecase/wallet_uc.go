package usecase

import (
	"context"
	"errors"

	"settlement-service/internal/domain"
	"settlement-service/internal/repository"

	"go.uber.org/zap"
)

// WalletUsecase is the read path: a wallet with derived earnings. A
// missing wallet is created with a zero balance; the insert is idempotent
// under the (user, currency) unique constraint, so it is safe outside any
// settlement or withdrawal lock.
type WalletUsecase struct {
	wallets repository.WalletRepository
	logger  *zap.Logger
}

func NewWalletUsecase(wallets repository.WalletRepository, logger *zap.Logger) *WalletUsecase {
	return &WalletUsecase{wallets: wallets, logger: logger}
}

func (uc *WalletUsecase) GetWallet(ctx context.Context, userID int64) (*domain.WalletStatement, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.wallets.GetStatement(ctx, userID, domain.LedgerCurrency)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	w, err := uc.wallets.EnsureExists(ctx, userID, domain.LedgerCurrency)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("wallet created lazily", zap.Int64("user_id", userID))

	return &domain.WalletStatement{Wallet: *w}, nil
}
