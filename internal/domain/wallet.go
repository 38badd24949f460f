package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerCurrency is the single currency all wallets and transactions are
// denominated in.
const LedgerCurrency = "RUB"

// Wallet holds one balance per (user, currency). Created lazily on first
// read or first purchase credit.
type Wallet struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletStatement is a wallet enriched with earnings aggregates for the
// owner-facing wallet view.
type WalletStatement struct {
	Wallet
	TotalEarned    decimal.Decimal `json:"total_earned"`
	TotalPurchases int64           `json:"total_purchases"`
}
