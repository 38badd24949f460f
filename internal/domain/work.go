package domain

import "github.com/shopspring/decimal"

// Work is the published item being bought. The settlement engine only
// reads the author and the listed price; the catalog owns the rest.
type Work struct {
	ID       int64           `json:"id"`
	AuthorID int64           `json:"author_id"`
	Price    decimal.Decimal `json:"price"`
}
