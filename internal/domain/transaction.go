package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePurchase   TransactionType = "purchase"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is one row in the append-only ledger. Immutable once
// committed except for the status field (withdrawal lifecycle).
// Purchases carry a positive amount, withdrawals a negative one.
type Transaction struct {
	ID            int64             `json:"id"`
	Reference     string            `json:"reference"`
	UserID        int64             `json:"user_id"`
	WalletID      int64             `json:"wallet_id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Description   string            `json:"description,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TransactionWithBalance is a history row joined with the wallet's
// current balance.
type TransactionWithBalance struct {
	Transaction
	WalletBalance decimal.Decimal `json:"balance"`
}

// PurchaseRequest is the input to purchase settlement.
type PurchaseRequest struct {
	UserID        int64           `json:"user_id" validate:"required"`
	WorkID        int64           `json:"work_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method"`
}

// Validate checks the request beyond struct tags. The amount is taken from
// the client as submitted; it must at least be a positive decimal.
func (r *PurchaseRequest) Validate() error {
	if r.UserID <= 0 || r.WorkID <= 0 {
		return ErrInvalidInput
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidInput
	}
	return nil
}

// SettlementResult is returned after a committed purchase settlement.
type SettlementResult struct {
	TransactionID  int64           `json:"transaction_id"`
	Reference      string          `json:"reference"`
	PurchaseID     int64           `json:"purchase_id"`
	AuthorAmount   decimal.Decimal `json:"author_amount"`
	PlatformAmount decimal.Decimal `json:"platform_amount"`
}
