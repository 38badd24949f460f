package usecase

import (
	"context"
	"fmt"
	"time"

	"settlement-service/internal/domain"
	"settlement-service/internal/repository"
	"settlement-service/pkg/utils"

	"go.uber.org/zap"
)

// HistoryLimit caps the transaction history page.
const HistoryLimit = 50

// EventPublisher receives committed settlement facts. Publishing is
// best-effort; a publish failure never rolls back the unit of work.
type EventPublisher interface {
	SettlementCompleted(ctx context.Context, buyerID, authorID int64, res *domain.SettlementResult) error
	WithdrawalRequested(ctx context.Context, w *domain.Withdrawal) error
}

// SettlementUsecase settles purchases: one transaction row, two
// commission splits, an author wallet credit and a purchase row, all in a
// single transactional scope.
type SettlementUsecase struct {
	txm          repository.TxManager
	works        repository.WorkRepository
	wallets      repository.WalletRepository
	transactions repository.TransactionRepository
	splits       repository.CommissionRepository
	purchases    repository.PurchaseRepository
	settings     SettingsProvider
	events       EventPublisher
	refs         *utils.RefGenerator
	logger       *zap.Logger
	uowTimeout   time.Duration
}

func NewSettlementUsecase(
	txm repository.TxManager,
	works repository.WorkRepository,
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	splits repository.CommissionRepository,
	purchases repository.PurchaseRepository,
	settings SettingsProvider,
	events EventPublisher,
	refs *utils.RefGenerator,
	logger *zap.Logger,
	uowTimeout time.Duration,
) *SettlementUsecase {
	return &SettlementUsecase{
		txm:          txm,
		works:        works,
		wallets:      wallets,
		transactions: transactions,
		splits:       splits,
		purchases:    purchases,
		settings:     settings,
		events:       events,
		refs:         refs,
		logger:       logger,
		uowTimeout:   uowTimeout,
	}
}

// SettlePurchase records the purchase, splits the amount between platform
// and author, and credits the author's wallet. Any failure aborts the
// whole sequence; no partial ledger state is observable.
func (uc *SettlementUsecase) SettlePurchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.SettlementResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "balance"
	}

	pct, err := uc.settings.CommissionPercentage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read commission percentage: %w", err)
	}

	// The timeout bounds how long any lock taken below can be held.
	ctx, cancel := context.WithTimeout(ctx, uc.uowTimeout)
	defer cancel()

	tx, err := uc.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	work, err := uc.works.GetByID(ctx, tx, req.WorkID)
	if err != nil {
		return nil, err
	}

	wallet, err := uc.wallets.GetOrCreate(ctx, tx, req.UserID, domain.LedgerCurrency)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		Reference:     uc.refs.New(),
		UserID:        req.UserID,
		WalletID:      wallet.ID,
		Type:          domain.TransactionTypePurchase,
		Amount:        req.Amount,
		Currency:      domain.LedgerCurrency,
		Status:        domain.TransactionStatusCompleted,
		PaymentMethod: req.PaymentMethod,
		Description:   fmt.Sprintf("Purchase work #%d", req.WorkID),
	}
	if err := uc.transactions.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	split := domain.ComputeSplit(req.Amount, pct)

	platformSplit := &domain.CommissionSplit{
		TransactionID: txn.ID,
		RecipientType: domain.RecipientTypePlatform,
		Amount:        split.Platform,
		Percentage:    split.PlatformPercent,
		Status:        "completed",
	}
	if err := uc.splits.Create(ctx, tx, platformSplit); err != nil {
		return nil, err
	}

	authorSplit := &domain.CommissionSplit{
		TransactionID: txn.ID,
		RecipientType: domain.RecipientTypeAuthor,
		RecipientID:   &work.AuthorID,
		Amount:        split.Author,
		Percentage:    split.AuthorPercent,
		Status:        "completed",
	}
	if err := uc.splits.Create(ctx, tx, authorSplit); err != nil {
		return nil, err
	}

	// Single atomic increment; no read-modify-write on the author side.
	if err := uc.wallets.Credit(ctx, tx, work.AuthorID, domain.LedgerCurrency, split.Author); err != nil {
		return nil, err
	}

	purchase := &domain.Purchase{
		UserID:        req.UserID,
		WorkID:        req.WorkID,
		TransactionID: txn.ID,
		Price:         req.Amount,
	}
	if err := uc.purchases.Create(ctx, tx, purchase); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	res := &domain.SettlementResult{
		TransactionID:  txn.ID,
		Reference:      txn.Reference,
		PurchaseID:     purchase.ID,
		AuthorAmount:   split.Author,
		PlatformAmount: split.Platform,
	}

	uc.logger.Info("purchase settled",
		zap.Int64("user_id", req.UserID),
		zap.Int64("work_id", req.WorkID),
		zap.String("reference", txn.Reference),
		zap.String("author_amount", split.Author.String()),
		zap.String("platform_amount", split.Platform.String()),
	)

	if uc.events != nil {
		if err := uc.events.SettlementCompleted(context.WithoutCancel(ctx), req.UserID, work.AuthorID, res); err != nil {
			uc.logger.Warn("failed to publish settlement event", zap.Error(err))
		}
	}
	return res, nil
}

// History returns the user's most recent ledger rows with the wallet
// balance attached.
func (uc *SettlementUsecase) History(ctx context.Context, userID int64) ([]*domain.TransactionWithBalance, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.transactions.ListByUser(ctx, userID, HistoryLimit)
}

// GetByReference looks up one ledger row by its reference code. Malformed
// references are rejected before touching storage.
func (uc *SettlementUsecase) GetByReference(ctx context.Context, ref string) (*domain.Transaction, error) {
	if !uc.refs.Valid(ref) {
		return nil, fmt.Errorf("malformed reference %q: %w", ref, domain.ErrInvalidInput)
	}
	return uc.transactions.GetByReference(ctx, ref)
}

// Splits returns the commission breakdown of one settled transaction.
func (uc *SettlementUsecase) Splits(ctx context.Context, transactionID int64) ([]*domain.CommissionSplit, error) {
	if transactionID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.splits.ListByTransaction(ctx, transactionID)
}

// Purchases returns the user's purchase records, newest first.
func (uc *SettlementUsecase) Purchases(ctx context.Context, userID int64) ([]*domain.Purchase, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.purchases.ListByUser(ctx, userID)
}
