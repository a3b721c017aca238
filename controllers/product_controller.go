package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// productView renders one product with its resolved display pricing
func productView(product models.Product, offers []models.CategoryOffer, now time.Time) gin.H {
	breakdown := utils.ResolvePrice(product, offers, now)
	view := gin.H{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"image_url":      product.ImageURL,
		"category":       product.Category.Name,
		"price":          fmt.Sprintf("%.2f", breakdown.UnitPrice),
		"original_price": fmt.Sprintf("%.2f", breakdown.OriginalPrice),
		"stock":          product.Stock,
		"sold":           product.Sold,
		"free_shipping":  product.FreeShipping,
		"rating":         product.Rating,
		"total_reviews":  product.TotalReviews,
	}
	if breakdown.OfferPercent > 0 {
		view["offer_percent"] = breakdown.OfferPercent
	}
	if breakdown.FlashSaleApplied {
		view["flash_sale"] = gin.H{
			"discount_percent": breakdown.FlashSalePercent,
			"ends_at":          product.FlashSaleEndDate,
		}
	}
	if product.ReturnPolicyDays > 0 {
		view["return_policy_days"] = product.ReturnPolicyDays
	}
	return view
}

// ListProducts returns the catalog with offer and flash-sale pricing applied
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Product{}).
		Preload("Category").
		Where("is_active = ? AND blocked = ?", true, false)

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name ILIKE ?", category)
	}
	if c.Query("flash_sale") == "true" {
		query = query.Where("is_flash_sale = ? AND flash_sale_end_date > ?", true, time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	var products []models.Product
	if err := query.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	now := time.Now()
	offers, err := utils.GetActiveOffers(now)
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]gin.H, 0, len(products))
	for _, product := range products {
		views = append(views, productView(product, offers, now))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", views, total, page, limit)
}

// GetProductDetails returns one product with pricing and its reviews
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	now := time.Now()
	offers, err := utils.GetActiveOffers(now)
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch product", nil)
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("User").Where("product_id = ?", product.ID).
		Order("created_at desc").Limit(50).Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews for product %d: %v", product.ID, err)
	}

	reviewViews := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		reviewViews = append(reviewViews, gin.H{
			"id":       review.ID,
			"username": review.User.Username,
			"rating":   review.Rating,
			"comment":  review.Comment,
			"date":     review.CreatedAt.Format("2006-01-02"),
		})
	}

	view := productView(product, offers, now)
	view["reviews"] = reviewViews
	utils.Success(c, "Product retrieved successfully", gin.H{"product": view})
}
