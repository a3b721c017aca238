package models

import (
	"time"
)

// Referral records one user signing up with another user's referral code.
// Rewarded=true once the referrer's voucher has been minted for it.
type Referral struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReferrerID     uint      `json:"referrer_id" gorm:"index"`
	ReferredUserID uint      `json:"referred_user_id" gorm:"uniqueIndex"`
	Code           string    `json:"code"`
	Rewarded       bool      `json:"rewarded" gorm:"default:false"`
	RewardCode     string    `json:"reward_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
