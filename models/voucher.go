package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher type constants
const (
	VoucherTypeFixed      = "fixed"
	VoucherTypePercentage = "percentage"

	VoucherDiscountOrder    = "order"
	VoucherDiscountShipping = "shipping"
)

// Voucher is a discount code created by an admin or minted when a return is
// approved. Codes are case-normalized to uppercase at creation. A voucher is
// never deleted on use; consumption is tracked per user in VoucherUsage.
type Voucher struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"uniqueIndex" json:"code"`
	Type            string         `json:"type"`          // "fixed" or "percentage"
	DiscountType    string         `json:"discount_type"` // "order" or "shipping"
	Discount        float64        `json:"discount"`
	MinSpend        float64        `json:"min_spend"`
	UsageLimit      int            `json:"usage_limit"`
	IsReturnVoucher bool           `json:"is_return_voucher" gorm:"default:false"`
	Active          bool           `json:"active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserVoucher attaches a voucher to a specific user's available list,
// used for return credits and affiliate rewards.
type UserVoucher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"index"`
	VoucherID uint      `json:"voucher_id"`
	Code      string    `json:"code"`
	GrantedAt time.Time `json:"granted_at"`
}

// VoucherUsage is the per-user usage counter for a voucher code. Incremented
// only inside the order placement transaction.
type VoucherUsage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"index:idx_voucher_usage_user_code,unique"`
	Code      string    `json:"code" gorm:"index:idx_voucher_usage_user_code,unique"`
	UsedCount int       `json:"used_count"`
	LastUsed  time.Time `json:"last_used"`
}
