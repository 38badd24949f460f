package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.PlatformSetting, error)
	List(ctx context.Context) ([]*domain.PlatformSetting, error)
	Upsert(ctx context.Context, key, value, description string) (*domain.PlatformSetting, error)
}

type settingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*domain.PlatformSetting, error) {
	var s domain.PlatformSetting
	err := r.db.QueryRow(ctx, `
		SELECT key, value, description, created_at, updated_at
		FROM platform_settings
		WHERE key = $1
	`, key).Scan(&s.Key, &s.Value, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &s, nil
}

func (r *settingsRepo) List(ctx context.Context) ([]*domain.PlatformSetting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key, value, description, created_at, updated_at
		FROM platform_settings
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlatformSetting
	for rows.Next() {
		var s domain.PlatformSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *settingsRepo) Upsert(ctx context.Context, key, value, description string) (*domain.PlatformSetting, error) {
	var s domain.PlatformSetting
	err := r.db.QueryRow(ctx, `
		INSERT INTO platform_settings (key, value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
		RETURNING key, value, description, created_at, updated_at
	`, key, value, description).Scan(&s.Key, &s.Value, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return &s, nil
}
