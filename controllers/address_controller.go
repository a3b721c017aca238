package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
	"gorm.io/gorm"
)

// AddAddress creates a shipping address for the user. Setting is_default
// clears the previous default so at most one address carries the flag.
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if errs := utils.ValidateAddress(addr); len(errs) > 0 {
		utils.ValidationError(c, "Invalid address", errs)
		return
	}

	addr.ID = 0
	addr.UserID = user.ID

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&addr).Error
	})
	if err != nil {
		utils.LogError("Failed to create address for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create address", nil)
		return
	}

	utils.Created(c, "Address added successfully", gin.H{"address_id": addr.ID})
}

// UpdateAddress edits one of the user's addresses
func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var addr models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).First(&addr).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var update models.Address
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if errs := utils.ValidateAddress(update); len(errs) > 0 {
		utils.ValidationError(c, "Invalid address", errs)
		return
	}

	update.ID = addr.ID
	update.UserID = user.ID
	update.CreatedAt = addr.CreatedAt

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if update.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ? AND id <> ?", user.ID, addr.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&update).Error
	})
	if err != nil {
		utils.LogError("Failed to update address %d: %v", addr.ID, err)
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}

	utils.Success(c, "Address updated successfully", nil)
}

// DeleteAddress removes one of the user's addresses
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	addressID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		utils.LogError("Failed to delete address %d: %v", addressID, result.Error)
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}

// ListAddresses returns the user's saved addresses
func ListAddresses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}

	utils.Success(c, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}
