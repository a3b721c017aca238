package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	"gorm.io/gorm"
)

// AddToCart adds a product to the user's cart or bumps its quantity
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive || product.Blocked {
		utils.BadRequest(c, "Product is not available", nil)
		return
	}

	var item models.CartItem
	err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: req.Quantity}
	} else if err != nil {
		utils.LogError("Failed to load cart item: %v", err)
		utils.InternalServerError(c, "Failed to add to cart", nil)
		return
	} else {
		item.Quantity += req.Quantity
	}

	// Cart-time stock check is advisory; the order transaction re-checks
	if item.Quantity > product.Stock {
		utils.BadRequest(c, fmt.Sprintf("Only %d units of '%s' are in stock", product.Stock, product.Name), nil)
		return
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.LogError("Failed to save cart item: %v", err)
		utils.InternalServerError(c, "Failed to add to cart", nil)
		return
	}
	utils.LogInfo("User %d added product %d x%d to cart", user.ID, product.ID, req.Quantity)

	utils.Success(c, "Added to cart", gin.H{"quantity": item.Quantity})
}

// UpdateCartItem sets a cart line's quantity; zero removes it
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")
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
		Quantity int `json:"quantity" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Quantity == 0 {
		if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			utils.LogError("Failed to remove cart item: %v", err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
		utils.Success(c, "Removed from cart", nil)
		return
	}

	var item models.CartItem
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&item).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		utils.LogError("Failed to update cart item: %v", err)
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	utils.Success(c, "Cart updated", gin.H{"quantity": item.Quantity})
}

// GetCart returns the cart with resolved pricing and shipping estimate
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	details, err := utils.GetCartDetails(user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", nil)
		return
	}

	items := make([]gin.H, 0, len(details.Lines))
	for _, line := range details.Lines {
		items = append(items, gin.H{
			"product_id":     line.Product.ID,
			"name":           line.Product.Name,
			"image_url":      line.Product.ImageURL,
			"quantity":       line.Quantity,
			"unit_price":     fmt.Sprintf("%.2f", line.Breakdown.UnitPrice),
			"original_price": fmt.Sprintf("%.2f", line.Breakdown.OriginalPrice),
			"line_total":     fmt.Sprintf("%.2f", line.Breakdown.UnitPrice*float64(line.Quantity)),
			"free_shipping":  line.Product.FreeShipping,
		})
	}

	shippingFee := utils.ComputeShippingFee(details.ItemCount, details.AllFreeShip)
	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":          items,
		"subtotal":       fmt.Sprintf("%.2f", details.Subtotal),
		"offer_subtotal": fmt.Sprintf("%.2f", details.OfferSubtotal),
		"shipping_fee":   fmt.Sprintf("%.2f", shippingFee),
		"item_count":     details.ItemCount,
	})
}

// ClearCart empties the user's cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.LogError("Failed to clear cart for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	utils.Success(c, "Cart cleared", nil)
}
