package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
	WithdrawalStatusPaid     WithdrawalStatus = "paid"
)

// Withdrawal is a user-initiated payout request. It is created in the
// pending state with the amount already debited from the wallet; rejecting
// it returns the amount.
type Withdrawal struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	WalletID       int64             `json:"wallet_id"`
	TransactionID  *int64            `json:"transaction_id,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Status         WithdrawalStatus  `json:"status"`
	PaymentMethod  string            `json:"payment_method"`
	PaymentDetails map[string]string `json:"payment_details,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CanTransitionTo reports whether the withdrawal may move to next.
// pending -> approved | rejected, approved -> paid | rejected.
func (w *Withdrawal) CanTransitionTo(next WithdrawalStatus) bool {
	switch w.Status {
	case WithdrawalStatusPending:
		return next == WithdrawalStatusApproved || next == WithdrawalStatusRejected
	case WithdrawalStatusApproved:
		return next == WithdrawalStatusPaid || next == WithdrawalStatusRejected
	default:
		return false
	}
}

// WithdrawalRequest is the input to a payout request.
type WithdrawalRequest struct {
	UserID         int64             `json:"user_id" validate:"required"`
	Amount         decimal.Decimal   `json:"amount" validate:"required"`
	PaymentMethod  string            `json:"payment_method" validate:"required"`
	PaymentDetails map[string]string `json:"payment_details"`
}

func (r *WithdrawalRequest) Validate() error {
	if r.UserID <= 0 || r.PaymentMethod == "" {
		return ErrInvalidInput
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidInput
	}
	return nil
}
