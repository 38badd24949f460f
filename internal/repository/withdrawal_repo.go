package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error
	SetTransactionID(ctx context.Context, tx pgx.Tx, id, transactionID int64) error
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.WithdrawalStatus) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Withdrawal, error)
}

type withdrawalRepo struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepo(db *pgxpool.Pool) WithdrawalRepository {
	return &withdrawalRepo{db: db}
}

const withdrawalColumns = `id, user_id, wallet_id, transaction_id, amount, status, payment_method, payment_details, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.WalletID, &w.TransactionID, &w.Amount,
		&w.Status, &w.PaymentMethod, &w.PaymentDetails, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}
	if w.PaymentDetails == nil {
		w.PaymentDetails = map[string]string{}
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO withdrawals (user_id, wallet_id, amount, status, payment_method, payment_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, w.UserID, w.WalletID, w.Amount, w.Status, w.PaymentMethod, w.PaymentDetails).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// SetTransactionID links the withdrawal to its ledger row. The withdrawal
// is inserted before the transaction, so the link is written afterwards
// inside the same unit of work.
func (r *withdrawalRepo) SetTransactionID(ctx context.Context, tx pgx.Tx, id, transactionID int64) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE withdrawals SET transaction_id = $1, updated_at = now() WHERE id = $2
	`, transactionID, id)
	if err != nil {
		return fmt.Errorf("failed to link withdrawal transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}
	return nil
}

// GetByIDForUpdate locks the withdrawal row so concurrent lifecycle
// updates are serialized.
func (r *withdrawalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Withdrawal, error) {
	if tx == nil {
		return nil, errors.New("transaction cannot be nil for locked query")
	}

	w, err := scanWithdrawal(tx.QueryRow(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal: %w", err)
	}
	return w, nil
}

func (r *withdrawalRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.WithdrawalStatus) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE withdrawals SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}
	return nil
}

func (r *withdrawalRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []*domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
