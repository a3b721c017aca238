package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

type productRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" binding:"required,gt=0"`
	Stock            int     `json:"stock" binding:"gte=0"`
	CategoryID       uint    `json:"category_id" binding:"required"`
	ImageURL         string  `json:"image_url"`
	FreeShipping     bool    `json:"free_shipping"`
	ReturnPolicyDays int     `json:"return_policy_days"`
}

// AdminCreateProduct adds a product to the catalog
func AdminCreateProduct(c *gin.Context) {
	utils.LogInfo("AdminCreateProduct called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		OriginalPrice:    req.Price,
		Stock:            req.Stock,
		CategoryID:       req.CategoryID,
		ImageURL:         req.ImageURL,
		FreeShipping:     req.FreeShipping,
		ReturnPolicyDays: req.ReturnPolicyDays,
		IsActive:         true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}
	utils.LogInfo("Created product ID: %d", product.ID)

	utils.Created(c, "Product created successfully", gin.H{"product_id": product.ID})
}

// AdminUpdateProduct edits product fields, including an absolute stock set
func AdminUpdateProduct(c *gin.Context) {
	utils.LogInfo("AdminUpdateProduct called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req struct {
		Name             *string  `json:"name"`
		Description      *string  `json:"description"`
		Price            *float64 `json:"price"`
		Stock            *int     `json:"stock"`
		CategoryID       *uint    `json:"category_id"`
		ImageURL         *string  `json:"image_url"`
		FreeShipping     *bool    `json:"free_shipping"`
		ReturnPolicyDays *int     `json:"return_policy_days"`
		IsActive         *bool    `json:"is_active"`
		Blocked          *bool    `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.ValidationError(c, "Price must be greater than 0", nil)
			return
		}
		updates["price"] = *req.Price
		updates["original_price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			utils.ValidationError(c, "Stock cannot be negative", nil)
			return
		}
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.FreeShipping != nil {
		updates["free_shipping"] = *req.FreeShipping
	}
	if req.ReturnPolicyDays != nil {
		updates["return_policy_days"] = *req.ReturnPolicyDays
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Blocked != nil {
		updates["blocked"] = *req.Blocked
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}
	utils.LogInfo("Updated product ID: %d", product.ID)

	utils.Success(c, "Product updated successfully", nil)
}

// AdminSetFlashSale starts a flash sale on a product
func AdminSetFlashSale(c *gin.Context) {
	utils.LogInfo("AdminSetFlashSale called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		DiscountPercent float64   `json:"discount_percent" binding:"required,gt=0,lte=90"`
		EndDate         time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if !req.EndDate.After(time.Now()) {
		utils.ValidationError(c, "Flash sale end date must be in the future", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Model(&product).Updates(map[string]interface{}{
		"is_flash_sale":       true,
		"flash_sale_discount": req.DiscountPercent,
		"flash_sale_end_date": req.EndDate,
	}).Error; err != nil {
		utils.LogError("Failed to set flash sale on product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to set flash sale", nil)
		return
	}
	utils.LogInfo("Flash sale set on product %d: %.0f%% until %s", product.ID, req.DiscountPercent, req.EndDate)

	utils.Success(c, "Flash sale set successfully", nil)
}

// AdminClearFlashSale ends a product's flash sale
func AdminClearFlashSale(c *gin.Context) {
	utils.LogInfo("AdminClearFlashSale called")
	if _, ok := currentAdmin(c); !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	if err := config.DB.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{
			"is_flash_sale":       false,
			"flash_sale_discount": 0,
			"flash_sale_end_date": nil,
		}).Error; err != nil {
		utils.LogError("Failed to clear flash sale on product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to clear flash sale", nil)
		return
	}

	utils.Success(c, "Flash sale cleared successfully", nil)
}
