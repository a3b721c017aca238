package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// ListNotifications returns the user's notification feed, newest first
func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, limit := utils.GetPaginationParams(c)
	var total int64
	config.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&total)

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.LogError("Failed to load notifications for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load notifications", nil)
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).Count(&unread)

	utils.SuccessWithPagination(c, "Notifications retrieved successfully", gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	}, total, page, limit)
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid notification ID", nil)
		return
	}

	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("read", true)
	if result.Error != nil {
		utils.LogError("Failed to mark notification %d read: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to update notification", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Notification not found")
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}

// MarkAllNotificationsRead marks the whole feed as read
func MarkAllNotificationsRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error; err != nil {
		utils.LogError("Failed to mark notifications read for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update notifications", nil)
		return
	}
	utils.Success(c, "All notifications marked as read", nil)
}
