package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-service/internal/domain"
	"settlement-service/internal/repository"
	"settlement-service/pkg/utils"

	"go.uber.org/zap"
)

// WithdrawalUsecase creates and advances payout requests. The wallet row
// lock taken inside the unit of work is what prevents overdraft under
// concurrent requests.
type WithdrawalUsecase struct {
	txm          repository.TxManager
	wallets      repository.WalletRepository
	withdrawals  repository.WithdrawalRepository
	transactions repository.TransactionRepository
	settings     SettingsProvider
	events       EventPublisher
	refs         *utils.RefGenerator
	logger       *zap.Logger
	uowTimeout   time.Duration
}

func NewWithdrawalUsecase(
	txm repository.TxManager,
	wallets repository.WalletRepository,
	withdrawals repository.WithdrawalRepository,
	transactions repository.TransactionRepository,
	settings SettingsProvider,
	events EventPublisher,
	refs *utils.RefGenerator,
	logger *zap.Logger,
	uowTimeout time.Duration,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		txm:          txm,
		wallets:      wallets,
		withdrawals:  withdrawals,
		transactions: transactions,
		settings:     settings,
		events:       events,
		refs:         refs,
		logger:       logger,
		uowTimeout:   uowTimeout,
	}
}

// RequestWithdrawal validates the amount against the configured minimum,
// locks the wallet row, checks funds and debits the balance while
// creating the pending payout request. Validation and debit happen under
// one row lock, so two concurrent requests cannot both spend the same
// balance.
func (uc *WithdrawalUsecase) RequestWithdrawal(ctx context.Context, req *domain.WithdrawalRequest) (*domain.Withdrawal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	min, err := uc.settings.MinWithdrawalAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read minimum withdrawal amount: %w", err)
	}
	if req.Amount.LessThan(min) {
		return nil, fmt.Errorf("minimum withdrawal is %s %s: %w", min.StringFixed(2), domain.LedgerCurrency, domain.ErrBelowMinimum)
	}

	// Bounds the wallet lock hold time.
	ctx, cancel := context.WithTimeout(ctx, uc.uowTimeout)
	defer cancel()

	tx, err := uc.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.wallets.GetForUpdate(ctx, tx, req.UserID, domain.LedgerCurrency)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, err
	}
	if wallet.Balance.LessThan(req.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	w := &domain.Withdrawal{
		UserID:         req.UserID,
		WalletID:       wallet.ID,
		Amount:         req.Amount,
		Status:         domain.WithdrawalStatusPending,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	}
	if err := uc.withdrawals.Create(ctx, tx, w); err != nil {
		return nil, err
	}

	if err := uc.wallets.DebitByID(ctx, tx, wallet.ID, req.Amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		Reference:     uc.refs.New(),
		UserID:        req.UserID,
		WalletID:      wallet.ID,
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        req.Amount.Neg(),
		Currency:      domain.LedgerCurrency,
		Status:        domain.TransactionStatusPending,
		PaymentMethod: req.PaymentMethod,
		Description:   fmt.Sprintf("Withdrawal #%d", w.ID),
	}
	if err := uc.transactions.Create(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := uc.withdrawals.SetTransactionID(ctx, tx, w.ID, txn.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}
	w.TransactionID = &txn.ID

	uc.logger.Info("withdrawal requested",
		zap.Int64("user_id", req.UserID),
		zap.Int64("withdrawal_id", w.ID),
		zap.String("amount", req.Amount.String()),
	)

	if uc.events != nil {
		if err := uc.events.WithdrawalRequested(context.WithoutCancel(ctx), w); err != nil {
			uc.logger.Warn("failed to publish withdrawal event", zap.Error(err))
		}
	}
	return w, nil
}

// UpdateStatus advances a withdrawal through its lifecycle. Rejection
// returns the held amount to the wallet: the money left the balance when
// the request was created, so value is conserved.
func (uc *WithdrawalUsecase) UpdateStatus(ctx context.Context, id int64, next domain.WithdrawalStatus) (*domain.Withdrawal, error) {
	switch next {
	case domain.WithdrawalStatusApproved, domain.WithdrawalStatusRejected, domain.WithdrawalStatusPaid:
	default:
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, uc.uowTimeout)
	defer cancel()

	tx, err := uc.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	w, err := uc.withdrawals.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !w.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", w.Status, next, domain.ErrInvalidTransition)
	}

	switch next {
	case domain.WithdrawalStatusRejected:
		if err := uc.wallets.CreditByID(ctx, tx, w.WalletID, w.Amount); err != nil {
			return nil, err
		}
		if w.TransactionID != nil {
			if err := uc.transactions.UpdateStatus(ctx, tx, *w.TransactionID, domain.TransactionStatusFailed); err != nil {
				return nil, err
			}
		}
	case domain.WithdrawalStatusPaid:
		if w.TransactionID != nil {
			if err := uc.transactions.UpdateStatus(ctx, tx, *w.TransactionID, domain.TransactionStatusCompleted); err != nil {
				return nil, err
			}
		}
	}

	if err := uc.withdrawals.UpdateStatus(ctx, tx, id, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	uc.logger.Info("withdrawal status updated",
		zap.Int64("withdrawal_id", id),
		zap.String("from", string(w.Status)),
		zap.String("to", string(next)),
	)

	w.Status = next
	return w, nil
}

// ListByUser returns the user's withdrawal requests, newest first.
func (uc *WithdrawalUsecase) ListByUser(ctx context.Context, userID int64) ([]*domain.Withdrawal, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.withdrawals.ListByUser(ctx, userID)
}
