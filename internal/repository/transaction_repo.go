package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.TransactionStatus) error
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.TransactionWithBalance, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

// Create inserts a ledger row inside the engine's transaction and fills in
// the generated id and timestamps.
func (r *transactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (reference, user_id, wallet_id, type, amount, currency, status, payment_method, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, t.Reference, t.UserID, t.WalletID, t.Type, t.Amount, t.Currency, t.Status, t.PaymentMethod, t.Description).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateStatus advances the withdrawal lifecycle on the ledger row. The
// rest of the row never changes after commit.
func (r *transactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.TransactionStatus) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE transactions SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByReference looks up one ledger row by its unique reference code.
func (r *transactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.QueryRow(ctx, `
		SELECT id, reference, user_id, wallet_id, type, amount, currency,
		       status, payment_method, description, created_at, updated_at
		FROM transactions
		WHERE reference = $1
	`, reference).Scan(
		&t.ID, &t.Reference, &t.UserID, &t.WalletID, &t.Type, &t.Amount, &t.Currency,
		&t.Status, &t.PaymentMethod, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by reference: %w", err)
	}
	return &t, nil
}

// ListByUser returns the user's most recent transactions joined with the
// current wallet balance, newest first.
func (r *transactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.TransactionWithBalance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.reference, t.user_id, t.wallet_id, t.type, t.amount, t.currency,
		       t.status, t.payment_method, t.description, t.created_at, t.updated_at,
		       COALESCE(w.balance, 0)
		FROM transactions t
		LEFT JOIN wallets w ON t.wallet_id = w.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.TransactionWithBalance
	for rows.Next() {
		var t domain.TransactionWithBalance
		if err := rows.Scan(
			&t.ID, &t.Reference, &t.UserID, &t.WalletID, &t.Type, &t.Amount, &t.Currency,
			&t.Status, &t.PaymentMethod, &t.Description, &t.CreatedAt, &t.UpdatedAt,
			&t.WalletBalance,
		); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
