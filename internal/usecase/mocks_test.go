package usecase

import (
	"context"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx transaction. Commit and Rollback are counted
// so tests can assert whether a unit of work reached its success point.
type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.commits++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}

type mockTxManager struct{ mock.Mock }

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

type mockWorkRepo struct{ mock.Mock }

func (m *mockWorkRepo) GetByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.Work, error) {
	args := m.Called(ctx, tx, id)
	w, _ := args.Get(0).(*domain.Work)
	return w, args.Error(1)
}

type mockWalletRepo struct{ mock.Mock }

func (m *mockWalletRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, userID, currency)
	w, _ := args.Get(0).(*domain.Wallet)
	return w, args.Error(1)
}

func (m *mockWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, userID, currency)
	w, _ := args.Get(0).(*domain.Wallet)
	return w, args.Error(1)
}

func (m *mockWalletRepo) Credit(ctx context.Context, tx pgx.Tx, userID int64, currency string, amount decimal.Decimal) error {
	return m.Called(ctx, tx, userID, currency, amount).Error(0)
}

func (m *mockWalletRepo) CreditByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	return m.Called(ctx, tx, walletID, amount).Error(0)
}

func (m *mockWalletRepo) DebitByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	return m.Called(ctx, tx, walletID, amount).Error(0)
}

func (m *mockWalletRepo) GetStatement(ctx context.Context, userID int64, currency string) (*domain.WalletStatement, error) {
	args := m.Called(ctx, userID, currency)
	s, _ := args.Get(0).(*domain.WalletStatement)
	return s, args.Error(1)
}

func (m *mockWalletRepo) EnsureExists(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, currency)
	w, _ := args.Get(0).(*domain.Wallet)
	return w, args.Error(1)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	return m.Called(ctx, tx, t).Error(0)
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.TransactionStatus) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

func (m *mockTransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	t, _ := args.Get(0).(*domain.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.TransactionWithBalance, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]*domain.TransactionWithBalance)
	return list, args.Error(1)
}

type mockCommissionRepo struct{ mock.Mock }

func (m *mockCommissionRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.CommissionSplit) error {
	return m.Called(ctx, tx, s).Error(0)
}

func (m *mockCommissionRepo) ListByTransaction(ctx context.Context, transactionID int64) ([]*domain.CommissionSplit, error) {
	args := m.Called(ctx, transactionID)
	list, _ := args.Get(0).([]*domain.CommissionSplit)
	return list, args.Error(1)
}

func (m *mockCommissionRepo) TotalsByRecipientType(ctx context.Context) ([]*domain.CommissionReport, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.CommissionReport)
	return list, args.Error(1)
}

type mockPurchaseRepo struct{ mock.Mock }

func (m *mockPurchaseRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Purchase) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *mockPurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Purchase, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*domain.Purchase)
	return list, args.Error(1)
}

type mockWithdrawalRepo struct{ mock.Mock }

func (m *mockWithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	return m.Called(ctx, tx, w).Error(0)
}

func (m *mockWithdrawalRepo) SetTransactionID(ctx context.Context, tx pgx.Tx, id, transactionID int64) error {
	return m.Called(ctx, tx, id, transactionID).Error(0)
}

func (m *mockWithdrawalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Withdrawal, error) {
	args := m.Called(ctx, tx, id)
	w, _ := args.Get(0).(*domain.Withdrawal)
	return w, args.Error(1)
}

func (m *mockWithdrawalRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.WithdrawalStatus) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

func (m *mockWithdrawalRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Withdrawal, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*domain.Withdrawal)
	return list, args.Error(1)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) CommissionPercentage(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *mockSettings) MinWithdrawalAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) SettlementCompleted(ctx context.Context, buyerID, authorID int64, res *domain.SettlementResult) error {
	return m.Called(ctx, buyerID, authorID, res).Error(0)
}

func (m *mockEvents) WithdrawalRequested(ctx context.Context, w *domain.Withdrawal) error {
	return m.Called(ctx, w).Error(0)
}

// decimalEq matches a decimal argument by value rather than internal
// representation.
func decimalEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool {
		return got.Equal(want)
	})
}
