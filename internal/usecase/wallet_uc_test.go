package usecase

import (
	"context"
	"testing"

	"settlement-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetWallet_ReturnsStatement(t *testing.T) {
	wallets := &mockWalletRepo{}
	uc := NewWalletUsecase(wallets, zap.NewNop())

	wallets.On("GetStatement", mock.Anything, int64(1), domain.LedgerCurrency).
		Return(&domain.WalletStatement{
			Wallet:         domain.Wallet{ID: 11, UserID: 1, Balance: decimal.NewFromInt(250)},
			TotalEarned:    decimal.NewFromInt(800),
			TotalPurchases: 3,
		}, nil)

	s, err := uc.GetWallet(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(250)))
	assert.True(t, s.TotalEarned.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, int64(3), s.TotalPurchases)
	wallets.AssertNotCalled(t, "EnsureExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetWallet_CreatesMissingWallet(t *testing.T) {
	wallets := &mockWalletRepo{}
	uc := NewWalletUsecase(wallets, zap.NewNop())

	wallets.On("GetStatement", mock.Anything, int64(2), domain.LedgerCurrency).
		Return(nil, domain.ErrWalletNotFound)
	wallets.On("EnsureExists", mock.Anything, int64(2), domain.LedgerCurrency).
		Return(&domain.Wallet{ID: 12, UserID: 2, Currency: domain.LedgerCurrency}, nil)

	s, err := uc.GetWallet(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(12), s.ID)
	assert.True(t, s.Balance.IsZero())
	assert.True(t, s.TotalEarned.IsZero())
	assert.Zero(t, s.TotalPurchases)
	wallets.AssertExpectations(t)
}

func TestGetWallet_InvalidUser(t *testing.T) {
	uc := NewWalletUsecase(&mockWalletRepo{}, zap.NewNop())

	_, err := uc.GetWallet(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
