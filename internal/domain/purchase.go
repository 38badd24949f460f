package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase links a buyer, a work and the transaction that settled it.
type Purchase struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	WorkID        int64           `json:"work_id"`
	TransactionID int64           `json:"transaction_id"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
}
