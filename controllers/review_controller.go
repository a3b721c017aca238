package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	"gorm.io/gorm"
)

// recomputeProductRating refreshes the product's cached rating aggregates
// from the reviews table inside the caller's transaction. Reviews are stored
// once; the product fields are derived, never written directly.
func recomputeProductRating(tx *gorm.DB, productID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&stats).Error; err != nil {
		return err
	}
	return tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"rating":        stats.Avg,
			"total_reviews": stats.Count,
		}).Error
}

// SubmitReview creates or updates the acting user's review for a product.
// Only users with a delivered order containing the product may review it.
func SubmitReview(c *gin.Context) {
	utils.LogInfo("SubmitReview called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var purchased int64
	config.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			user.ID, models.OrderStatusDelivered, product.ID).
		Count(&purchased)
	if purchased == 0 {
		utils.Forbidden(c, "You can only review products from delivered orders")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		err := tx.Where("product_id = ? AND user_id = ?", product.ID, user.ID).First(&review).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			review = models.Review{ProductID: product.ID, UserID: user.ID}
		} else if err != nil {
			return err
		}
		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return recomputeProductRating(tx, product.ID)
	})
	if err != nil {
		utils.LogError("Failed to save review for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to save review", nil)
		return
	}
	utils.LogInfo("User %d reviewed product %d with rating %d", user.ID, product.ID, req.Rating)

	utils.Success(c, "Review saved successfully", nil)
}

// DeleteReview removes the acting user's review and refreshes the aggregates
func DeleteReview(c *gin.Context) {
	utils.LogInfo("DeleteReview called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("product_id = ? AND user_id = ?", productID, user.ID).
			Delete(&models.Review{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NotFoundError("Review not found", nil)
		}
		return recomputeProductRating(tx, uint(productID))
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.Success(c, "Review deleted successfully", nil)
}
