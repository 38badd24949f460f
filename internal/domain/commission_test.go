package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeSplit(t *testing.T) {
	cases := []struct {
		name         string
		amount       string
		percentage   string
		wantPlatform string
		wantAuthor   string
	}{
		{"even split", "1000", "20", "200", "800"},
		{"fractional amount", "99.99", "20", "20.00", "79.99"},
		{"zero commission", "500", "0", "0", "500"},
		{"full commission", "500", "100", "500", "0"},
		{"banker's rounding down", "1.25", "10", "0.12", "1.13"},
		{"banker's rounding up", "3.75", "10", "0.38", "3.37"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			split := ComputeSplit(amount, decimal.RequireFromString(tc.percentage))

			assert.True(t, split.Platform.Equal(decimal.RequireFromString(tc.wantPlatform)),
				"platform got %s", split.Platform)
			assert.True(t, split.Author.Equal(decimal.RequireFromString(tc.wantAuthor)),
				"author got %s", split.Author)
			assert.True(t, split.Platform.Add(split.Author).Equal(amount),
				"shares must sum to the amount, got %s", split.Platform.Add(split.Author))
		})
	}
}

func TestComputeSplit_PercentsSumToHundred(t *testing.T) {
	split := ComputeSplit(decimal.NewFromInt(100), decimal.RequireFromString("17.5"))
	assert.True(t, split.PlatformPercent.Add(split.AuthorPercent).Equal(decimal.NewFromInt(100)))
}
