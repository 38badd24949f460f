package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *domain.Purchase) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Purchase, error)
}

type purchaseRepo struct {
	db *pgxpool.Pool
}

func NewPurchaseRepo(db *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.Purchase) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO purchases (user_id, work_id, transaction_id, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.UserID, p.WorkID, p.TransactionID, p.Price).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (r *purchaseRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, work_id, transaction_id, price, created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.WorkID, &p.TransactionID, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
