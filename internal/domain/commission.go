package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecipientType string

const (
	RecipientTypePlatform RecipientType = "platform"
	RecipientTypeAuthor   RecipientType = "author"
)

// CommissionSplit is one half of the division of a purchase amount.
// Exactly two rows exist per purchase transaction: a platform row with a
// NULL recipient and an author row carrying the author's user id.
type CommissionSplit struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	RecipientType RecipientType   `json:"recipient_type"`
	RecipientID   *int64          `json:"recipient_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Split is the computed division of a purchase amount.
type Split struct {
	Platform        decimal.Decimal
	Author          decimal.Decimal
	PlatformPercent decimal.Decimal
	AuthorPercent   decimal.Decimal
}

// ComputeSplit divides amount between platform and author for a commission
// percentage in the 0-100 range. The platform share is banker's-rounded to
// two places and the author share is the remainder, so the two always sum
// to the full amount.
func ComputeSplit(amount, percentage decimal.Decimal) Split {
	hundred := decimal.NewFromInt(100)
	platform := amount.Mul(percentage).Div(hundred).RoundBank(2)
	return Split{
		Platform:        platform,
		Author:          amount.Sub(platform),
		PlatformPercent: percentage,
		AuthorPercent:   hundred.Sub(percentage),
	}
}

// CommissionReport aggregates completed splits for one recipient type.
type CommissionReport struct {
	RecipientType    RecipientType   `json:"recipient_type"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}
