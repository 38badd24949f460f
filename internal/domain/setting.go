package domain

import "time"

// Settings keys read by the engines.
const (
	SettingCommissionPercentage = "platform_commission_percentage"
	SettingMinWithdrawalAmount  = "min_withdrawal_amount"
)

// PlatformSetting is one key/value row of process-wide configuration.
// Values are strings convertible to decimal where the engines consume them.
type PlatformSetting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
