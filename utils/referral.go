package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiran-703/ShopNest/models"
	"gorm.io/gorm"
)

// RewardReferralOnDelivery mints the referrer's reward voucher once the
// referred user's first order reaches delivered. The Rewarded flag makes the
// call idempotent, so running it on every delivery is safe.
func RewardReferralOnDelivery(db *gorm.DB, order models.Order) {
	var referral models.Referral
	if err := db.Where("referred_user_id = ? AND rewarded = ?", order.UserID, false).
		First(&referral).Error; err != nil {
		return
	}

	code := strings.ToUpper("REF-" + uuid.New().String()[:8])
	err := db.Transaction(func(tx *gorm.DB) error {
		voucher := models.Voucher{
			Code:         code,
			Type:         models.VoucherTypePercentage,
			DiscountType: models.VoucherDiscountOrder,
			Discount:     10,
			MinSpend:     100,
			UsageLimit:   1,
			Active:       true,
		}
		if err := tx.Create(&voucher).Error; err != nil {
			return err
		}
		grant := models.UserVoucher{
			UserID:    referral.ReferrerID,
			VoucherID: voucher.ID,
			Code:      voucher.Code,
			GrantedAt: time.Now(),
		}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
		return tx.Model(&referral).Updates(map[string]interface{}{
			"rewarded":    true,
			"reward_code": voucher.Code,
		}).Error
	})
	if err != nil {
		LogError("Failed to reward referral %d: %v", referral.ID, err)
		return
	}
	LogInfo("Referral %d rewarded with voucher %s", referral.ID, code)

	Notify(referral.ReferrerID, NotificationEvent{
		Icon:        "gift",
		Title:       "Referral reward",
		Description: fmt.Sprintf("Someone you referred completed their first order. Voucher %s is now in your account.", code),
		Href:        "/vouchers",
	})
}
