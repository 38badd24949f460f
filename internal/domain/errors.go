package domain

import "errors"

// Generic
var (
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrNotFound       = errors.New("not found")
	ErrInternalServer = errors.New("internal server error")
)

// Settlement / wallet
var (
	ErrWorkNotFound      = errors.New("work not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrSettingNotFound   = errors.New("platform setting not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBelowMinimum      = errors.New("amount below minimum withdrawal")
)

// Withdrawal lifecycle
var (
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrInvalidTransition  = errors.New("invalid withdrawal status transition")
)
