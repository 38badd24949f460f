package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommissionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, s *domain.CommissionSplit) error
	ListByTransaction(ctx context.Context, transactionID int64) ([]*domain.CommissionSplit, error)
	TotalsByRecipientType(ctx context.Context) ([]*domain.CommissionReport, error)
}

type commissionRepo struct {
	db *pgxpool.Pool
}

func NewCommissionRepo(db *pgxpool.Pool) CommissionRepository {
	return &commissionRepo{db: db}
}

func (r *commissionRepo) Create(ctx context.Context, tx pgx.Tx, s *domain.CommissionSplit) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO commission_splits (transaction_id, recipient_type, recipient_id, amount, percentage, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.TransactionID, s.RecipientType, s.RecipientID, s.Amount, s.Percentage, s.Status).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create commission split: %w", err)
	}
	return nil
}

func (r *commissionRepo) ListByTransaction(ctx context.Context, transactionID int64) ([]*domain.CommissionSplit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, transaction_id, recipient_type, recipient_id, amount, percentage, status, created_at
		FROM commission_splits
		WHERE transaction_id = $1
		ORDER BY recipient_type
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission splits: %w", err)
	}
	defer rows.Close()

	var out []*domain.CommissionSplit
	for rows.Next() {
		var s domain.CommissionSplit
		if err := rows.Scan(&s.ID, &s.TransactionID, &s.RecipientType, &s.RecipientID,
			&s.Amount, &s.Percentage, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// TotalsByRecipientType aggregates completed splits into platform and
// author totals for the commission report.
func (r *commissionRepo) TotalsByRecipientType(ctx context.Context) ([]*domain.CommissionReport, error) {
	rows, err := r.db.Query(ctx, `
		SELECT recipient_type, COALESCE(SUM(amount), 0), COUNT(DISTINCT transaction_id)
		FROM commission_splits
		WHERE status = 'completed'
		GROUP BY recipient_type
		ORDER BY recipient_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commission splits: %w", err)
	}
	defer rows.Close()

	var out []*domain.CommissionReport
	for rows.Next() {
		var rep domain.CommissionReport
		if err := rows.Scan(&rep.RecipientType, &rep.TotalAmount, &rep.TransactionCount); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
