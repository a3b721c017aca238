package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// AdminCreateOffer creates a category-wide percentage offer for a date range
func AdminCreateOffer(c *gin.Context) {
	utils.LogInfo("AdminCreateOffer called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req struct {
		CategoryID      uint      `json:"category_id" binding:"required"`
		DiscountPercent float64   `json:"discount_percent" binding:"required,gt=0,lte=90"`
		StartDate       time.Time `json:"start_date" binding:"required"`
		EndDate         time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		utils.ValidationError(c, "End date must be after start date", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	offer := models.CategoryOffer{
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Active:          true,
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		utils.LogError("Failed to create offer: %v", err)
		utils.InternalServerError(c, "Failed to create offer", nil)
		return
	}
	utils.LogInfo("Created offer %d: %s %.0f%%", offer.ID, category.Name, req.DiscountPercent)

	utils.Created(c, "Offer created successfully", gin.H{"offer_id": offer.ID})
}

// AdminUpdateOffer edits or deactivates an offer
func AdminUpdateOffer(c *gin.Context) {
	utils.LogInfo("AdminUpdateOffer called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return
	}

	var offer models.CategoryOffer
	if err := config.DB.First(&offer, offerID).Error; err != nil {
		utils.NotFound(c, "Offer not found")
		return
	}

	var req struct {
		DiscountPercent *float64   `json:"discount_percent"`
		StartDate       *time.Time `json:"start_date"`
		EndDate         *time.Time `json:"end_date"`
		Active          *bool      `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DiscountPercent != nil {
		updates["discount_percent"] = *req.DiscountPercent
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&offer).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to update offer", nil)
		return
	}

	utils.Success(c, "Offer updated successfully", nil)
}

// AdminListOffers lists all category offers
func AdminListOffers(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var offers []models.CategoryOffer
	if err := config.DB.Order("created_at desc").Find(&offers).Error; err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}

	utils.Success(c, "Offers retrieved successfully", gin.H{"offers": offers})
}
