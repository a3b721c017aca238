package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// AddToWishlist saves a product to the user's wishlist
func AddToWishlist(c *gin.Context) {
	utils.LogInfo("AddToWishlist called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.Wishlist
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Product already in wishlist", nil)
		return
	}

	entry := models.Wishlist{UserID: user.ID, ProductID: product.ID}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.LogError("Failed to add to wishlist: %v", err)
		utils.InternalServerError(c, "Failed to add to wishlist", nil)
		return
	}

	utils.Success(c, "Added to wishlist", nil)
}

// RemoveFromWishlist drops a product from the user's wishlist
func RemoveFromWishlist(c *gin.Context) {
	utils.LogInfo("RemoveFromWishlist called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	result := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.Wishlist{})
	if result.Error != nil {
		utils.LogError("Failed to remove from wishlist: %v", result.Error)
		utils.InternalServerError(c, "Failed to remove from wishlist", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Product not in wishlist")
		return
	}

	utils.Success(c, "Removed from wishlist", nil)
}

// GetWishlist lists the user's saved products with resolved pricing
func GetWishlist(c *gin.Context) {
	utils.LogInfo("GetWishlist called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var entries []models.Wishlist
	if err := config.DB.Preload("Product.Category").Where("user_id = ?", user.ID).Find(&entries).Error; err != nil {
		utils.LogError("Failed to fetch wishlist for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wishlist", nil)
		return
	}

	now := time.Now()
	offers, err := utils.GetActiveOffers(now)
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch wishlist", nil)
		return
	}

	views := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		views = append(views, productView(entry.Product, offers, now))
	}

	utils.Success(c, "Wishlist retrieved successfully", gin.H{"items": views})
}
