package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// GetReferralDashboard returns the user's referral code and the status of
// everyone who signed up with it
func GetReferralDashboard(c *gin.Context) {
	utils.LogInfo("GetReferralDashboard called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var referrals []models.Referral
	if err := config.DB.Where("referrer_id = ?", user.ID).
		Order("created_at DESC").Find(&referrals).Error; err != nil {
		utils.LogError("Failed to load referrals for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load referrals", nil)
		return
	}

	rewarded := 0
	rows := make([]gin.H, 0, len(referrals))
	for _, r := range referrals {
		if r.Rewarded {
			rewarded++
		}
		var referred models.User
		config.DB.Select("username").First(&referred, r.ReferredUserID)
		rows = append(rows, gin.H{
			"username":    referred.Username,
			"signed_up":   r.CreatedAt.Format("2006-01-02"),
			"rewarded":    r.Rewarded,
			"reward_code": r.RewardCode,
		})
	}

	utils.Success(c, "Referral dashboard retrieved successfully", gin.H{
		"referral_code":  user.ReferralCode,
		"total_signups":  len(referrals),
		"total_rewarded": rewarded,
		"referrals":      rows,
	})
}

// AdminListReferrals shows all referral signups and their reward state
func AdminListReferrals(c *gin.Context) {
	utils.LogInfo("AdminListReferrals called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	page, limit := utils.GetPaginationParams(c)
	var total int64
	config.DB.Model(&models.Referral{}).Count(&total)

	var referrals []models.Referral
	if err := config.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&referrals).Error; err != nil {
		utils.LogError("Failed to load referrals: %v", err)
		utils.InternalServerError(c, "Failed to load referrals", nil)
		return
	}

	rows := make([]gin.H, 0, len(referrals))
	for _, r := range referrals {
		rows = append(rows, gin.H{
			"id":               r.ID,
			"referrer_id":      r.ReferrerID,
			"referred_user_id": r.ReferredUserID,
			"code":             r.Code,
			"rewarded":         r.Rewarded,
			"reward_code":      r.RewardCode,
			"created_at":       r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	utils.SuccessWithPagination(c, fmt.Sprintf("Found %d referrals", total),
		gin.H{"referrals": rows}, total, page, limit)
}
