package usecase

import (
	"context"
	"testing"
	"time"

	"settlement-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context, key string) (*domain.PlatformSetting, error) {
	args := m.Called(ctx, key)
	s, _ := args.Get(0).(*domain.PlatformSetting)
	return s, args.Error(1)
}

func (m *mockSettingsRepo) List(ctx context.Context) ([]*domain.PlatformSetting, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.PlatformSetting)
	return list, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, key, value, description string) (*domain.PlatformSetting, error) {
	args := m.Called(ctx, key, value, description)
	s, _ := args.Get(0).(*domain.PlatformSetting)
	return s, args.Error(1)
}

func newSettingsUC(repo *mockSettingsRepo) *SettingsUsecase {
	// nil redis client: the cache layer is skipped entirely.
	return NewSettingsUsecase(repo, nil, time.Minute, zap.NewNop())
}

func TestCommissionPercentage(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Get", mock.Anything, domain.SettingCommissionPercentage).
		Return(&domain.PlatformSetting{Key: domain.SettingCommissionPercentage, Value: "20"}, nil)

	pct, err := uc.CommissionPercentage(context.Background())
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(20)))
}

func TestCommissionPercentage_Missing(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Get", mock.Anything, domain.SettingCommissionPercentage).
		Return(nil, domain.ErrSettingNotFound)

	_, err := uc.CommissionPercentage(context.Background())
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)
}

func TestCommissionPercentage_OutOfRange(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Get", mock.Anything, domain.SettingCommissionPercentage).
		Return(&domain.PlatformSetting{Key: domain.SettingCommissionPercentage, Value: "150"}, nil)

	_, err := uc.CommissionPercentage(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommissionPercentage_NotANumber(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Get", mock.Anything, domain.SettingCommissionPercentage).
		Return(&domain.PlatformSetting{Key: domain.SettingCommissionPercentage, Value: "twenty"}, nil)

	_, err := uc.CommissionPercentage(context.Background())
	assert.Error(t, err)
}

func TestMinWithdrawalAmount(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Get", mock.Anything, domain.SettingMinWithdrawalAmount).
		Return(&domain.PlatformSetting{Key: domain.SettingMinWithdrawalAmount, Value: "100.00"}, nil)

	min, err := uc.MinWithdrawalAmount(context.Background())
	require.NoError(t, err)
	assert.True(t, min.Equal(decimal.NewFromInt(100)))
}

func TestUpsertSetting_Validation(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	_, err := uc.Upsert(context.Background(), "", "20", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(context.Background(), domain.SettingCommissionPercentage, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertSetting(t *testing.T) {
	repo := &mockSettingsRepo{}
	uc := newSettingsUC(repo)

	repo.On("Upsert", mock.Anything, domain.SettingMinWithdrawalAmount, "250", "payout floor").
		Return(&domain.PlatformSetting{Key: domain.SettingMinWithdrawalAmount, Value: "250"}, nil)

	s, err := uc.Upsert(context.Background(), domain.SettingMinWithdrawalAmount, "250", "payout floor")
	require.NoError(t, err)
	assert.Equal(t, "250", s.Value)
}
