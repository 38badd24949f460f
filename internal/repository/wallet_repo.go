package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	// In-transaction access used by the engines.
	GetOrCreate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error)
	Credit(ctx context.Context, tx pgx.Tx, userID int64, currency string, amount decimal.Decimal) error
	CreditByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error
	DebitByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error

	// Read path for the wallet view.
	GetStatement(ctx context.Context, userID int64, currency string) (*domain.WalletStatement, error)
	EnsureExists(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
}

type walletRepo struct {
	db *pgxpool.Pool
}

func NewWalletRepo(db *pgxpool.Pool) WalletRepository {
	return &walletRepo{db: db}
}

const walletColumns = `id, user_id, currency, balance, created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Currency, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the wallet for (user, currency), inserting a zero
// balance row when none exists yet. Must run inside the settlement
// transaction so a failed settlement does not leave a stray wallet.
func (r *walletRepo) GetOrCreate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	if tx == nil {
		return nil, errors.New("transaction cannot be nil")
	}

	w, err := scanWallet(tx.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1 AND currency = $2
	`, userID, currency))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	w, err = scanWallet(tx.QueryRow(ctx, `
		INSERT INTO wallets (user_id, balance, currency)
		VALUES ($1, 0, $2)
		RETURNING `+walletColumns, userID, currency))
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return w, nil
}

// GetForUpdate locks the wallet row (SELECT ... FOR UPDATE) until the
// enclosing transaction ends. This is what serializes concurrent
// withdrawals against the same wallet.
func (r *walletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	if tx == nil {
		return nil, errors.New("transaction cannot be nil for locked query")
	}

	w, err := scanWallet(tx.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1 AND currency = $2
		FOR UPDATE
	`, userID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return w, nil
}

// Credit adds amount to the (user, currency) wallet as a single atomic
// increment, creating the wallet on first credit. No row lock is taken;
// the arithmetic happens in the database.
func (r *walletRepo) Credit(ctx context.Context, tx pgx.Tx, userID int64, currency string, amount decimal.Decimal) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO wallets (user_id, currency, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT wallets_user_currency_key
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = now()
	`, userID, currency, amount)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return nil
}

func (r *walletRepo) CreditByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	return r.adjustByID(ctx, tx, walletID, amount)
}

func (r *walletRepo) DebitByID(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	return r.adjustByID(ctx, tx, walletID, amount.Neg())
}

func (r *walletRepo) adjustByID(ctx context.Context, tx pgx.Tx, walletID int64, delta decimal.Decimal) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE wallets
		SET balance = balance + $1, updated_at = now()
		WHERE id = $2
	`, delta, walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// GetStatement returns the wallet together with total author earnings and
// the buyer's distinct purchase count.
func (r *walletRepo) GetStatement(ctx context.Context, userID int64, currency string) (*domain.WalletStatement, error) {
	var s domain.WalletStatement
	err := r.db.QueryRow(ctx, `
		SELECT w.id, w.user_id, w.currency, w.balance, w.created_at, w.updated_at,
		       COALESCE((
		           SELECT SUM(cs.amount)
		           FROM commission_splits cs
		           WHERE cs.recipient_type = 'author'
		             AND cs.recipient_id = w.user_id
		             AND cs.status = 'completed'
		       ), 0) AS total_earned,
		       (
		           SELECT COUNT(DISTINCT p.id)
		           FROM purchases p
		           WHERE p.user_id = w.user_id
		       ) AS total_purchases
		FROM wallets w
		WHERE w.user_id = $1 AND w.currency = $2
	`, userID, currency).Scan(
		&s.ID, &s.UserID, &s.Currency, &s.Balance, &s.CreatedAt, &s.UpdatedAt,
		&s.TotalEarned, &s.TotalPurchases,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet statement: %w", err)
	}
	return &s, nil
}

// EnsureExists inserts a zero wallet for (user, currency) when missing and
// returns the row. Idempotent by the unique constraint; used by the read
// path's lazy creation.
func (r *walletRepo) EnsureExists(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (user_id, balance, currency)
		VALUES ($1, 0, $2)
		ON CONFLICT ON CONSTRAINT wallets_user_currency_key DO NOTHING
	`, userID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure wallet: %w", err)
	}

	w, err := scanWallet(r.db.QueryRow(ctx, `
		SELECT `+walletColumns+`
		FROM wallets
		WHERE user_id = $1 AND currency = $2
	`, userID, currency))
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}
