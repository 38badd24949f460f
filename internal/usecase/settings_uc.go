package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"settlement-service/internal/domain"
	"settlement-service/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsProvider is what the engines see: the two numeric knobs they
// read per request. Absence of a key fails the operation; there is no
// silent default.
type SettingsProvider interface {
	CommissionPercentage(ctx context.Context) (decimal.Decimal, error)
	MinWithdrawalAmount(ctx context.Context) (decimal.Decimal, error)
}

// SettingsUsecase fronts the platform_settings table with a short-lived
// Redis cache. Admin writes invalidate the cached key immediately.
type SettingsUsecase struct {
	repo        repository.SettingsRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewSettingsUsecase(repo repository.SettingsRepository, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *SettingsUsecase {
	return &SettingsUsecase{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func settingCacheKey(key string) string {
	return "platform_setting:" + key
}

// Get returns one setting, cache first.
func (uc *SettingsUsecase) Get(ctx context.Context, key string) (*domain.PlatformSetting, error) {
	if uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, settingCacheKey(key)).Result(); err == nil {
			var cached domain.PlatformSetting
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return &cached, nil
			}
		}
	}

	s, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := uc.redisClient.Set(ctx, settingCacheKey(key), data, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache setting", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return s, nil
}

func (uc *SettingsUsecase) List(ctx context.Context) ([]*domain.PlatformSetting, error) {
	return uc.repo.List(ctx)
}

// Upsert writes the setting and drops the cached copy so the engines see
// the new value on their next read.
func (uc *SettingsUsecase) Upsert(ctx context.Context, key, value, description string) (*domain.PlatformSetting, error) {
	if key == "" || value == "" {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.repo.Upsert(ctx, key, value, description)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Del(ctx, settingCacheKey(key)).Err(); err != nil {
			uc.logger.Warn("failed to invalidate setting cache", zap.String("key", key), zap.Error(err))
		}
	}
	return s, nil
}

func (uc *SettingsUsecase) getDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	s, err := uc.Get(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("setting %s is not a decimal: %w", key, err)
	}
	return d, nil
}

func (uc *SettingsUsecase) CommissionPercentage(ctx context.Context) (decimal.Decimal, error) {
	pct, err := uc.getDecimal(ctx, domain.SettingCommissionPercentage)
	if err != nil {
		return decimal.Zero, err
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("commission percentage %s out of range: %w", pct, domain.ErrInvalidInput)
	}
	return pct, nil
}

func (uc *SettingsUsecase) MinWithdrawalAmount(ctx context.Context) (decimal.Decimal, error) {
	return uc.getDecimal(ctx, domain.SettingMinWithdrawalAmount)
}
