package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// AdminCreateVoucher creates a promotional voucher. Codes are normalized to
// uppercase.
func AdminCreateVoucher(c *gin.Context) {
	utils.LogInfo("AdminCreateVoucher called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req struct {
		Code         string  `json:"code" binding:"required"`
		Type         string  `json:"type" binding:"required,oneof=fixed percentage"`
		DiscountType string  `json:"discount_type" binding:"required,oneof=order shipping"`
		Discount     float64 `json:"discount" binding:"required,gt=0"`
		MinSpend     float64 `json:"min_spend"`
		UsageLimit   int     `json:"usage_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Type == models.VoucherTypePercentage && req.Discount > 100 {
		utils.ValidationError(c, "Percentage discount cannot exceed 100", nil)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var existing models.Voucher
	if err := config.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.Conflict(c, "A voucher with this code already exists", nil)
		return
	}

	voucher := models.Voucher{
		Code:         code,
		Type:         req.Type,
		DiscountType: req.DiscountType,
		Discount:     req.Discount,
		MinSpend:     req.MinSpend,
		UsageLimit:   req.UsageLimit,
		Active:       true,
	}
	if err := config.DB.Create(&voucher).Error; err != nil {
		utils.LogError("Failed to create voucher: %v", err)
		utils.InternalServerError(c, "Failed to create voucher", nil)
		return
	}
	utils.LogInfo("Created voucher %s", voucher.Code)

	utils.Created(c, "Voucher created successfully", gin.H{"voucher_id": voucher.ID, "code": voucher.Code})
}

// AdminUpdateVoucher edits or deactivates a voucher
func AdminUpdateVoucher(c *gin.Context) {
	utils.LogInfo("AdminUpdateVoucher called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	voucherID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid voucher ID", nil)
		return
	}

	var voucher models.Voucher
	if err := config.DB.First(&voucher, voucherID).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	var req struct {
		Discount   *float64 `json:"discount"`
		MinSpend   *float64 `json:"min_spend"`
		UsageLimit *int     `json:"usage_limit"`
		Active     *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.MinSpend != nil {
		updates["min_spend"] = *req.MinSpend
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&voucher).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update voucher %d: %v", voucher.ID, err)
		utils.InternalServerError(c, "Failed to update voucher", nil)
		return
	}

	utils.Success(c, "Voucher updated successfully", nil)
}

// AdminListVouchers lists all vouchers with usage totals
func AdminListVouchers(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}
	page, limit := utils.GetPaginationParams(c)

	var total int64
	config.DB.Model(&models.Voucher{}).Count(&total)

	var vouchers []models.Voucher
	if err := config.DB.Offset((page - 1) * limit).Limit(limit).
		Order("created_at desc").Find(&vouchers).Error; err != nil {
		utils.LogError("Failed to fetch vouchers: %v", err)
		utils.InternalServerError(c, "Failed to fetch vouchers", nil)
		return
	}

	utils.SuccessWithPagination(c, "Vouchers retrieved successfully", vouchers, total, page, limit)
}

// ListMyVouchers returns vouchers granted to the acting user (return credits
// and affiliate rewards) with their remaining uses
func ListMyVouchers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var grants []models.UserVoucher
	if err := config.DB.Where("user_id = ?", user.ID).Order("granted_at desc").Find(&grants).Error; err != nil {
		utils.LogError("Failed to fetch vouchers for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch vouchers", nil)
		return
	}

	views := make([]gin.H, 0, len(grants))
	for _, grant := range grants {
		var voucher models.Voucher
		if err := config.DB.Where("code = ?", grant.Code).First(&voucher).Error; err != nil {
			continue
		}
		var usage models.VoucherUsage
		config.DB.Where("user_id = ? AND code = ?", user.ID, grant.Code).First(&usage)

		views = append(views, gin.H{
			"code":              voucher.Code,
			"type":              voucher.Type,
			"discount_type":     voucher.DiscountType,
			"discount":          voucher.Discount,
			"min_spend":         voucher.MinSpend,
			"usage_limit":       voucher.UsageLimit,
			"used_count":        usage.UsedCount,
			"is_return_voucher": voucher.IsReturnVoucher,
			"active":            voucher.Active,
		})
	}

	utils.Success(c, "Vouchers retrieved successfully", gin.H{"vouchers": views})
}

// PreviewVoucher reports whether a voucher code would apply to the current
// cart, and the discount it would produce. Placement itself re-validates
// inside the order transaction; this endpoint only explains eligibility.
func PreviewVoucher(c *gin.Context) {
	utils.LogInfo("PreviewVoucher called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		utils.BadRequest(c, "Voucher code is required", nil)
		return
	}

	var voucher models.Voucher
	if err := config.DB.Where("code = ?", code).First(&voucher).Error; err != nil {
		utils.NotFound(c, "Voucher not found")
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}
	shippingFee := utils.ComputeShippingFee(details.ItemCount, details.AllFreeShip)

	var usage models.VoucherUsage
	config.DB.Where("user_id = ? AND code = ?", user.ID, code).First(&usage)

	discount := utils.ComputeVoucherDiscount(voucher, usage.UsedCount, details.Subtotal, shippingFee)
	if !discount.Eligible {
		reason := "Voucher is not applicable"
		switch {
		case !voucher.Active:
			reason = "Voucher is no longer active"
		case voucher.MinSpend > 0 && details.Subtotal < voucher.MinSpend:
			reason = "Cart subtotal is below the voucher's minimum spend"
		case voucher.UsageLimit > 0 && usage.UsedCount >= voucher.UsageLimit:
			reason = "You have already used this voucher the maximum number of times"
		}
		utils.Success(c, "Voucher not applicable", gin.H{"eligible": false, "reason": reason})
		return
	}

	utils.Success(c, "Voucher applicable", gin.H{
		"eligible":          true,
		"order_discount":    discount.OrderDiscount,
		"shipping_discount": discount.ShippingDiscount,
	})
}
