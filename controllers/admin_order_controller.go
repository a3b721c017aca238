package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiran-703/ShopNest/config"
	"github.com/kiran-703/ShopNest/models"
	"github.com/kiran-703/ShopNest/utils"
)

// adminActions maps the admin API's status actions onto the state machine
var adminActions = map[string]string{
	"shipped":   utils.ActionMarkShipped,
	"delivered": utils.ActionMarkDelivered,
	"cancelled": utils.ActionCancel,
}

// AdminListOrders lists orders with optional status filter
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")
	if _, ok := currentAdmin(c); !ok {
		return
	}
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Order{})
	filtered := false
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		filtered = true
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
		filtered = true
	}

	// Unfiltered first page is the console's landing view; served from cache
	// until the next order write invalidates it.
	cacheable := !filtered && page == 1
	if cacheable {
		if cached, ok := utils.CacheGet("views:orders:admin"); ok {
			var views []gin.H
			if err := json.Unmarshal([]byte(cached), &views); err == nil {
				var total int64
				config.DB.Model(&models.Order{}).Count(&total)
				utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, limit)
				return
			}
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Preload("OrderItems").Preload("User").
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := orderSummaryView(order)
		view["username"] = order.User.Username
		view["email"] = order.User.Email
		view["payment_method"] = order.PaymentMethod
		views = append(views, view)
	}

	if cacheable {
		if payload, err := json.Marshal(views); err == nil {
			utils.CacheSet("views:orders:admin", string(payload), 5*time.Minute)
		}
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, limit)
}

// AdminGetOrderDetails returns any order in full
func AdminGetOrderDetails(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("User").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	view := orderDetailView(order)
	view["username"] = order.User.Username
	view["email"] = order.User.Email
	if order.ReturnReason != "" {
		view["return_reason"] = order.ReturnReason
	}
	if order.ReturnDenyReason != "" {
		view["return_deny_reason"] = order.ReturnDenyReason
	}
	if order.CancellationReason != "" {
		view["cancellation_reason"] = order.CancellationReason
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": view})
}

// AdminUpdateOrderStatus moves an order to shipped, delivered or cancelled
// through the state machine
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	action, ok := adminActions[req.Status]
	if !ok {
		utils.BadRequest(c, "Invalid status", gin.H{
			"valid_statuses": []string{"shipped", "delivered", "cancelled"},
		})
		return
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), 0, utils.TransitionRequest{
		Actor:  utils.ActorAdmin,
		Action: action,
		Reason: req.Reason,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Admin %d moved order %d to %s", admin.ID, order.ID, order.Status)

	utils.Success(c, "Order status updated successfully", gin.H{"status": order.Status})
}

// AdminListReturnRequests lists orders awaiting return review
func AdminListReturnRequests(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Order{}).
		Where("status IN ?", []string{
			models.OrderStatusReturnRequested,
			models.OrderStatusReturnApproved,
			models.OrderStatusReturnShipped,
		})

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("OrderItems").Preload("User").
		Order("updated_at asc").Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch return requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch return requests", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := orderSummaryView(order)
		view["username"] = order.User.Username
		view["return_reason"] = order.ReturnReason
		views = append(views, view)
	}

	utils.SuccessWithPagination(c, "Return requests retrieved successfully", views, total, page, limit)
}

// AdminReviewReturn approves or denies a pending return request. Approval
// mints the store-credit voucher for the order total; denial puts the order
// back to delivered.
func AdminReviewReturn(c *gin.Context) {
	utils.LogInfo("AdminReviewReturn called")
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Action string `json:"action" binding:"required,oneof=approve deny"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	action := utils.ActionApproveReturn
	if req.Action == "deny" {
		action = utils.ActionDenyReturn
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), 0, utils.TransitionRequest{
		Actor:  utils.ActorAdmin,
		Action: action,
		Reason: req.Reason,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Admin %d %sd return for order %d", admin.ID, req.Action, order.ID)

	response := gin.H{"status": order.Status}
	if order.ReturnVoucherCode != "" {
		response["return_voucher_code"] = order.ReturnVoucherCode
	}
	utils.Success(c, "Return reviewed successfully", response)
}

// AdminFinalizeReturn closes out a return once the shipped-back items arrive
func AdminFinalizeReturn(c *gin.Context) {
	utils.LogInfo("AdminFinalizeReturn called")
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	order, err := utils.TransitionOrder(config.DB, uint(orderID), 0, utils.TransitionRequest{
		Actor:  utils.ActorAdmin,
		Action: utils.ActionFinalizeReturn,
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	utils.LogInfo("Admin %d finalized return for order %d", admin.ID, order.ID)

	utils.Success(c, "Return finalized successfully", gin.H{"status": order.Status})
}
